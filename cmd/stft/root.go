package main

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-stft/internal/config"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "stft",
		Short:         "Streaming short-time Fourier transform tools",
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "",
		"YAML configuration file (default "+config.DefaultPath+" if present)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "",
		"Log level: trace, debug, info, warn or error (overrides log_level)")

	root.AddCommand(newColumnsCmd(opts), newWindowsCmd())

	return root
}

// newLogger returns a text logger on w at the configured level.
func newLogger(w io.Writer, level string) (*logrus.Logger, error) {
	lvl, err := config.ParseLogLevel(level)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})

	return logger, nil
}
