package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/exvulsec/sendbot/config"
	"github.com/exvulsec/sendbot/log"
)

var root = &cobra.Command{
	Use:   "sendbot",
	Short: "post messages through a slack incoming webhook",
	Run: func(cmd *cobra.Command, args []string) {
		if err := cmd.Help(); err != nil {
			logrus.Panicf("failed to using help command, err is %v", err)
		}
	},
}

func Execute() {
	if err := root.Execute(); err != nil {
		panic(fmt.Errorf("execute cmd is err: %v", err))
	}
}

// setup loads the configuration and the logger shared by every subcommand.
func setup() error {
	if err := config.SetupConfig(); err != nil {
		return err
	}
	return log.InitLog(config.Conf.Log.Path, config.Conf.Log.Level)
}

func init() {
	root.PersistentFlags().StringVarP(&config.CfgPath, "config", "c", ".", "set config file path")
	root.PersistentFlags().StringVarP(&config.Env,
		"env",
		"e",
		"dev",
		"environment name, reads config.<env>.yaml")
	root.AddCommand(sayCmd)
	root.AddCommand(uriCmd)
	root.AddCommand(httpCmd)
}
