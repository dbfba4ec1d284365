package main

import (
	"errors"
	"fmt"

	"github.com/Rising-Edge-Group/ectf-public/pkg/classify"
	"github.com/Rising-Edge-Group/ectf-public/pkg/config"
	"github.com/Rising-Edge-Group/ectf-public/pkg/defaults"
	"github.com/Rising-Edge-Group/ectf-public/pkg/httpclient"
	"github.com/Rising-Edge-Group/ectf-public/pkg/session"
	"github.com/Rising-Edge-Group/ectf-public/pkg/tracing"
	"github.com/Rising-Edge-Group/ectf-public/pkg/ui"
)

// usageError is a command line mistake: bad flag, argument or command.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return usageError{fmt.Errorf(format, args...)}
}

// exitCodeError ends the run with code after the command already reported
// its result.
type exitCodeError struct{ code int }

func (e exitCodeError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// exitCode maps an error returned by a command to the process exit code.
// Errors raised before any command ran (unknown subcommand) count as usage
// errors.
func exitCode(err error, started bool) int {
	var ce exitCodeError
	var ue usageError
	switch {
	case err == nil:
		return defaults.ExitSuccess
	case errors.As(err, &ce):
		return ce.code
	case errors.As(err, &ue),
		errors.Is(err, config.ErrInsecurePermissions),
		errors.Is(err, config.ErrInvalidConfig),
		errors.Is(err, config.ErrMissingRequired),
		errors.Is(err, session.ErrInvalidInstanceURL),
		errors.Is(err, session.ErrMissingCookie),
		errors.Is(err, session.ErrUnauthenticated),
		errors.Is(err, httpclient.ErrProxyConfig),
		errors.Is(err, tracing.ErrExporter):
		return defaults.ExitUserError
	case errors.Is(err, session.ErrTransport):
		return defaults.ExitNetworkError
	case errors.Is(err, classify.ErrTokenNotFound),
		errors.Is(err, classify.ErrPagination),
		errors.Is(err, classify.ErrMarkup),
		errors.Is(err, session.ErrNotSupported):
		return defaults.ExitInternalError
	case !started:
		return defaults.ExitUserError
	default:
		return defaults.ExitInternalError
	}
}

// describe turns err into the message shown to the user and an optional
// hint line.
func describe(err error, configPath string) (message, hint string) {
	switch {
	case errors.Is(err, config.ErrInsecurePermissions):
		return "File permissions must be 600: " + configPath, "chmod 600 " + configPath
	case errors.Is(err, config.ErrInvalidConfig):
		return "Error parsing the configuration file: " + configPath, err.Error()
	case errors.Is(err, session.ErrUnauthenticated):
		return "The platform did not accept the identity cookie.", "Log in again and update " + defaults.IdentityCookie + " in " + configPath
	case errors.Is(err, session.ErrTransport):
		return "Could not reach the platform: " + err.Error(), "Check the instance URL, your VPN connection or --proxy"
	case errors.Is(err, classify.ErrTokenNotFound):
		return "The platform page carried no CSRF token.", "The instance may be in maintenance or its layout changed"
	}
	var ue usageError
	if errors.As(err, &ue) {
		return err.Error(), "Run '" + defaults.ToolName + " --help' for usage."
	}
	return err.Error(), ""
}

// report prints err and returns the exit code for it.
func (a *app) report(err error) int {
	code := exitCode(err, a.started)
	var ce exitCodeError
	if errors.As(err, &ce) {
		return code
	}
	if !a.started {
		err = usageError{err}
	}
	message, hint := describe(err, a.configPath)
	ui.PrintError(message)
	if hint != "" {
		ui.PrintHelp(hint)
	}
	a.logger.Debug("run failed", "error", err, "exit_code", code)
	return code
}
