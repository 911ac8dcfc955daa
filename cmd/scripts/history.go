package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ArowuTest/lottery-insights/internal/models"
	"github.com/ArowuTest/lottery-insights/internal/services"
	"github.com/ArowuTest/lottery-insights/internal/utils"
)

func historyCmd(a *app) *cobra.Command {
	var page, perPage int

	cmd := &cobra.Command{
		Use:   "history <game>",
		Short: "List stored draws, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			game, err := models.ParseGame(args[0])
			if err != nil {
				return err
			}
			history, err := a.draws.GetHistoryPage(cmd.Context(), game, page, perPage)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: page %d/%d, %d draws\n", game.Label(), history.Page, history.Pages, history.Total)
			for _, d := range history.Items {
				fmt.Fprintf(out, "%s  #%-5d %s | %s\n", d.Date.Format("02/01/2006"), d.DrawNumber, utils.PadNumbers(d.MainNumbers), utils.PadNumbers(d.BonusNumbers))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", services.DefaultPerPage, "draws per page")
	return cmd
}
