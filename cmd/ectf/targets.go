package main

import (
	"github.com/spf13/cobra"

	"github.com/Rising-Edge-Group/ectf-public/pkg/jsonutil"
	"github.com/Rising-Edge-Group/ectf-public/pkg/session"
	"github.com/Rising-Edge-Group/ectf-public/pkg/ui"
)

func newTargetsCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:         "targets",
		Short:       "List the targets of the instance",
		Args:        exactArgs(0),
		Annotations: map[string]string{needsSession: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			targets, err := a.session.ListTargets(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				if targets == nil {
					targets = []session.Target{}
				}
				return jsonutil.NewStreamEncoder(a.stdout).SetIndent("", "  ").Encode(targets)
			}
			if len(targets) == 0 {
				ui.PrintInfo("No targets found.")
				return nil
			}
			for _, t := range targets {
				ui.PrintTarget(t.ID, t.Name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print targets as a JSON array")
	return cmd
}
