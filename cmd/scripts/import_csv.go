package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ArowuTest/lottery-insights/internal/models"
)

func importCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <game> <file.csv>",
		Short: "Replace the stored history of a game with a local FDJ CSV export",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			game, err := models.ParseGame(args[0])
			if err != nil {
				return err
			}
			file, err := os.Open(args[1])
			if err != nil {
				return fmt.Errorf("failed to open CSV file: %w", err)
			}
			defer file.Close()

			result, err := a.sync.Import(cmd.Context(), game, file)
			if err != nil {
				return err
			}
			printSyncResult(cmd, result)
			return nil
		},
	}
	return cmd
}
