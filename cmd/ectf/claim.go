package main

import (
	"github.com/spf13/cobra"

	"github.com/Rising-Edge-Group/ectf-public/pkg/classify"
	"github.com/Rising-Edge-Group/ectf-public/pkg/defaults"
	"github.com/Rising-Edge-Group/ectf-public/pkg/ui"
)

const unknownResponseMessage = "(?) UNKNOWN Response. This is PROBABLY a bug and should be reported."

func newClaimCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "claim FLAG",
		Short:       "Attempt to claim the specified FLAG",
		Args:        exactArgs(1),
		Annotations: map[string]string{needsSession: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ui.PrintStatus("Attempting to claim the given flag...")
			outcome, err := a.session.ClaimFlag(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			message, tone, code := claimReport(outcome)
			ui.PrintResult(tone, message)
			if code != defaults.ExitSuccess {
				return exitCodeError{code}
			}
			return nil
		},
	}
}

// claimReport maps an outcome to the line shown to the player and the
// process exit code.
func claimReport(o classify.Outcome) (message string, tone ui.Tone, code int) {
	switch o {
	case classify.FlagNotFound:
		return "(!) The specified flag does not exist.", ui.ToneWarning, defaults.ExitClaimRejected
	case classify.AlreadyClaimed:
		return "(!) This flag has already been claimed.", ui.ToneWarning, defaults.ExitClaimRejected
	case classify.ClaimedForPoints:
		return "Flag claimed successfully!", ui.ToneSuccess, defaults.ExitSuccess
	case classify.DiscoveryRequired:
		return "(!) You need to discover at least one service before claiming this flag.", ui.ToneWarning, defaults.ExitClaimRejected
	case classify.AccessDenied:
		return "(!) You don't have access to the network to which this flag's target belongs.", ui.ToneWarning, defaults.ExitClaimRejected
	case classify.Unknown:
		return unknownResponseMessage, ui.ToneFailure, defaults.ExitUnknownResponse
	default:
		return unknownResponseMessage, ui.ToneFailure, defaults.ExitUnknownResponse
	}
}
