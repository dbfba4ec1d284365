package main

import (
	"github.com/spf13/cobra"

	"github.com/Rising-Edge-Group/ectf-public/pkg/config"
	"github.com/Rising-Edge-Group/ectf-public/pkg/defaults"
	"github.com/Rising-Edge-Group/ectf-public/pkg/ui"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   defaults.ToolName,
		Short: "Command line interface for echoCTF.RED",
		Long: `Command line interface for echoCTF.RED.

Authenticates with the _identity-red cookie of a logged-in browser session.
Default configuration file: ~/` + defaults.ConfigFileName,
		Version:       ui.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.opts.configPath, "config", config.DefaultPath(), "Path to the JSON or YAML configuration file")
	f.DurationVar(&a.opts.timeout, "timeout", defaults.HTTPTimeout, "Timeout for each request to the platform")
	f.BoolVar(&a.opts.debug, "debug", false, "Log every request to stderr")
	f.BoolVar(&a.opts.noColor, "no-color", false, "Disable colored output")
	f.StringVar(&a.opts.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file on exit")
	f.StringVar(&a.opts.otlpEndpoint, "otlp-endpoint", "", "Export traces to this OTLP/gRPC collector (host:port)")
	f.BoolVar(&a.opts.otlpInsecure, "otlp-insecure", false, "Connect to the OTLP collector without TLS")
	f.StringVar(&a.opts.proxy, "proxy", "", "Proxy URL (http, https, socks5, socks5h)")
	f.BoolVar(&a.opts.insecure, "insecure", false, "Skip TLS certificate verification")

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	root.AddCommand(
		newSpinCmd(a),
		newClaimCmd(a),
		newTargetsCmd(a),
		newVersionCmd(),
	)
	return root
}

// exactArgs is cobra.ExactArgs reporting a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}
