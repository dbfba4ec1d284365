package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Rising-Edge-Group/ectf-public/pkg/config"
	"github.com/Rising-Edge-Group/ectf-public/pkg/defaults"
	"github.com/Rising-Edge-Group/ectf-public/pkg/httpclient"
	"github.com/Rising-Edge-Group/ectf-public/pkg/metrics"
	"github.com/Rising-Edge-Group/ectf-public/pkg/prompt"
	"github.com/Rising-Edge-Group/ectf-public/pkg/session"
	"github.com/Rising-Edge-Group/ectf-public/pkg/tracing"
	"github.com/Rising-Edge-Group/ectf-public/pkg/ui"
)

// needsSession marks commands that talk to the platform.
const needsSession = "ectf/needs-session"

// globalOptions are the root command's persistent flags.
type globalOptions struct {
	configPath   string
	timeout      time.Duration
	debug        bool
	noColor      bool
	metricsFile  string
	otlpEndpoint string
	otlpInsecure bool
	proxy        string
	insecure     bool
}

// app carries the state of one invocation.
type app struct {
	opts globalOptions

	stdin          *os.File
	stdout, stderr io.Writer
	prompter       config.Prompter

	runID    string
	logger   *slog.Logger
	metrics  *metrics.Collector
	shutdown tracing.ShutdownFunc
	session  *session.Session

	// configPath is the expanded path of the file actually consulted
	configPath string
	// started is set once flag parsing and command lookup succeeded
	started bool
}

func newApp(stdin *os.File, stdout, stderr io.Writer) *app {
	if stdin == nil {
		stdin = os.Stdin
	}
	return &app{
		stdin:    stdin,
		stdout:   stdout,
		stderr:   stderr,
		prompter: prompt.NewTerminal(stdin, stderr),
		runID:    uuid.NewString(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// execute runs the command line and returns the process exit code.
func (a *app) execute(ctx context.Context, args []string) int {
	ui.SetOutput(a.stdout, a.stderr)

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	err := root.ExecuteContext(ctx)
	a.close()
	if err == nil {
		return defaults.ExitSuccess
	}
	return a.report(err)
}

// setup runs before every command: output styling and logging always,
// configuration, telemetry and the session only for platform commands.
func (a *app) setup(cmd *cobra.Command) error {
	a.started = true

	if a.opts.noColor || !ui.ColorAllowed() {
		ui.SetNoColor(true)
	}

	level := slog.LevelWarn
	if a.opts.debug {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level})).
		With("run_id", a.runID)

	if cmd.Annotations[needsSession] == "" {
		return nil
	}
	if a.opts.timeout <= 0 {
		return usageErrorf("--timeout must be positive, got %s", a.opts.timeout)
	}

	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	if a.metrics, err = metrics.New(); err != nil {
		return err
	}

	tracer, shutdown, err := tracing.Setup(cmd.Context(), tracing.Options{
		Endpoint: a.opts.otlpEndpoint,
		Insecure: a.opts.otlpInsecure,
		RunID:    a.runID,
	})
	if err != nil {
		return err
	}
	a.shutdown = shutdown

	hc := httpclient.WithTimeout(a.opts.timeout)
	hc.Proxy = a.opts.proxy
	hc.InsecureSkipVerify = a.opts.insecure
	hc.UserAgent = ui.UserAgent()
	client, err := httpclient.New(hc)
	if err != nil {
		return err
	}
	if a.opts.insecure {
		ui.PrintWarning("TLS certificate verification is disabled")
	}

	a.session, err = session.New(cfg.InstanceURL, cfg.IdentityCookie,
		session.WithHTTPClient(client),
		session.WithLogger(a.logger),
		session.WithMetrics(a.metrics),
		session.WithTracer(tracer),
	)
	if err != nil {
		return err
	}
	a.logger.Debug("session ready", "instance", a.session.BaseURL(), "timeout", a.opts.timeout)
	return nil
}

// loadConfig reads the configuration file and prompts for what it lacks.
func (a *app) loadConfig() (*config.Config, error) {
	a.configPath = a.opts.configPath
	cfg, err := config.Load(a.opts.configPath)
	if err != nil {
		return nil, err
	}
	a.configPath = cfg.Path
	if !cfg.Found {
		ui.PrintInfo(fmt.Sprintf("Configuration file not found: %s", cfg.Path))
		ui.PrintInfo("Proceeding without it.")
	} else {
		a.logger.Debug("configuration loaded", "path", cfg.Path)
	}
	if err := config.Complete(cfg, a.prompter); err != nil {
		return nil, err
	}
	return cfg, nil
}

// close flushes telemetry. Failures here never change the exit code.
func (a *app) close() {
	if a.shutdown != nil {
		if err := a.shutdown(context.Background()); err != nil {
			a.logger.Warn("trace export failed", "error", err)
		}
	}
	if a.opts.metricsFile != "" && a.metrics != nil {
		if err := a.metrics.WriteTextfile(a.opts.metricsFile); err != nil {
			ui.PrintWarning(err.Error())
		}
	}
}
