package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Rising-Edge-Group/ectf-public/pkg/ui"
)

func newSpinCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "spin TARGET_ID",
		Short:       "Spin the target specified by TARGET_ID",
		Args:        exactArgs(1),
		Annotations: map[string]string{needsSession: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return usageErrorf("invalid TARGET_ID %q: not an integer", args[0])
			}

			ui.PrintStatus(fmt.Sprintf("Spinning target with ID: %d", id))
			if err := a.session.Spin(cmd.Context(), id); err != nil {
				return err
			}
			ui.PrintSuccess("Spin request sent")
			return nil
		},
	}
}
