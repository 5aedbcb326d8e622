package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iov-one/settle"
	settled "github.com/iov-one/settle/cmd/settled/app"
	"github.com/iov-one/settle/commands"
	"github.com/iov-one/settle/commands/server"
	"github.com/spf13/cobra"
	"github.com/tendermint/tendermint/libs/log"
)

const flagLogLevel = "log-level"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Printf("Error: %+v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		home     string
		logLevel string
	)
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "settle")
	// The level filter is resolved once flags are parsed.
	filtered := &levelLogger{Logger: logger}

	root := &cobra.Command{
		Use:          "settled",
		Short:        "Payment channel settlement ABCI application",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opt, err := log.AllowLevel(logLevel)
			if err != nil {
				return err
			}
			filtered.Logger = log.NewFilter(logger, opt)
			return nil
		},
	}
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".settle")
	root.PersistentFlags().StringVar(&home, server.FlagHome, defaultHome, "directory to store files under")
	root.PersistentFlags().StringVar(&logLevel, flagLogLevel, "info", "log level: debug, info, error or none")

	root.AddCommand(
		server.InitCmd(settled.GenInitOptions, filtered),
		server.StartCmd(settled.GenerateApp, filtered),
		server.ValidateCmd(settled.Initializers()),
		&cobra.Command{
			Use:   "testgen [dir]",
			Short: "Write example serializations to testdata",
			RunE: func(cmd *cobra.Command, args []string) error {
				return commands.TestGenCmd(settled.Examples(), args)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the app version",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Println(settle.Version())
			},
		},
	)
	return root
}

// levelLogger delegates to a logger that can be replaced after the command
// line is parsed.
type levelLogger struct {
	log.Logger
}

func (l *levelLogger) With(keyvals ...interface{}) log.Logger {
	return l.Logger.With(keyvals...)
}
