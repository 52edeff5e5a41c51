package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/exvulsec/sendbot/client"
	"github.com/exvulsec/sendbot/config"
	"github.com/exvulsec/sendbot/notifier"
	"github.com/exvulsec/sendbot/server"
)

var httpCmd = &cobra.Command{
	Use:   "http",
	Short: "run http server relaying messages to the notifier",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setup(); err != nil {
			return err
		}
		n, err := config.Conf.Notifier(
			notifier.WithLogger(logrus.StandardLogger()),
			notifier.WithHTTPClient(client.HTTPClient()),
		)
		if err != nil {
			return err
		}
		logrus.Infof("relay messages with %s", n.Name())
		srv := server.NewHTTPServer(config.Conf.HTTPServerConfig, n)
		srv.Run()
		return nil
	},
}
