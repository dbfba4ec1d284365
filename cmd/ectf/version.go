package main

import (
	"github.com/spf13/cobra"

	"github.com/Rising-Edge-Group/ectf-public/pkg/ui"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  exactArgs(0),
		Run: func(*cobra.Command, []string) {
			ui.PrintMiniBanner()
		},
	}
}
