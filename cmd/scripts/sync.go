package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ArowuTest/lottery-insights/internal/models"
)

func syncCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync [game]",
		Short: "Download the FDJ history of one game, or of every game",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				game, err := models.ParseGame(args[0])
				if err != nil {
					return err
				}
				result, err := a.sync.Sync(cmd.Context(), game)
				if err != nil {
					return err
				}
				printSyncResult(cmd, result)
				return nil
			}

			results, err := a.sync.SyncAll(cmd.Context())
			for _, r := range results {
				printSyncResult(cmd, r)
			}
			return err
		},
	}
	return cmd
}

func printSyncResult(cmd *cobra.Command, r *models.SyncResult) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d draws stored, %d new, %d rows skipped (%s)\n",
		r.Game.Label(), r.Fetched, r.Added, r.Skipped, r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond))
}
