package main

import (
	"github.com/spf13/cobra"

	"github.com/Bama-S/capec-rel/internal/tui"
)

func newExploreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explore",
		Short: "Analyze nodes interactively in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := cliService(cmd.Context())
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), svc)
		},
	}
}
