package cmd

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/exvulsec/sendbot/client"
	"github.com/exvulsec/sendbot/config"
	"github.com/exvulsec/sendbot/notifier"
)

var sayCmd = &cobra.Command{
	Use:   "say [text]",
	Short: "send a message through the incoming webhook",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setup(); err != nil {
			return err
		}
		bot, err := config.Conf.SendBot(
			notifier.WithLogger(logrus.StandardLogger()),
			notifier.WithHTTPClient(client.HTTPClient()),
		)
		if err != nil {
			return err
		}

		msg, err := sayMessage(cmd.Flags(), args)
		if err != nil {
			return err
		}

		resultCh, err := bot.Post(msg)
		if err != nil {
			return err
		}
		result := <-resultCh
		if result.Err != nil {
			return fmt.Errorf("send message to slack is err: %w", result.Err)
		}
		if err := checkResponse(result.Response); err != nil {
			return err
		}
		logrus.Infof("message sent to %s on %s", msg.Channel, bot.TeamName())
		return nil
	},
}

// sayMessage builds the normalized message from the command line.
func sayMessage(flags *pflag.FlagSet, args []string) (notifier.Message, error) {
	msg := notifier.Message{Text: strings.Join(args, " ")}
	msg.Channel, _ = flags.GetString("channel")
	msg.Username, _ = flags.GetString("username")
	msg.IconEmoji, _ = flags.GetString("icon_emoji")
	msg.IconURL, _ = flags.GetString("icon_url")
	return notifier.NewMessage(msg)
}

// checkResponse treats any non-2xx webhook response as an error and closes
// the body.
func checkResponse(resp *http.Response) error {
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("slack responded %s, read body is err: %w", resp.Status, err)
	}
	return fmt.Errorf("slack responded %s: %s", resp.Status, body)
}

var uriCmd = &cobra.Command{
	Use:   "uri",
	Short: "print the incoming webhook uri with the token masked",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setup(); err != nil {
			return err
		}
		bot, err := config.Conf.SendBot()
		if err != nil {
			return err
		}
		uri := bot.WebhookURI()
		if i := strings.Index(uri, "token="); i >= 0 {
			uri = uri[:i] + "token=***"
		}
		fmt.Fprintln(cmd.OutOrStdout(), uri)
		return nil
	},
}

func addSayFlags(flags *pflag.FlagSet) {
	flags.String("channel", "", "channel to post to, #general when empty")
	flags.String("username", "", "override the bot display name")
	flags.String("icon_emoji", "", "icon emoji, e.g. :robot_face:")
	flags.String("icon_url", "", "icon url")
}

func init() {
	addSayFlags(sayCmd.Flags())
}
