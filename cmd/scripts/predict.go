package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ArowuTest/lottery-insights/internal/models"
	"github.com/ArowuTest/lottery-insights/internal/utils"
)

func predictCmd(a *app) *cobra.Command {
	var method string

	cmd := &cobra.Command{
		Use:   "predict <game>",
		Short: "Print the suggested grids of a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			game, err := models.ParseGame(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			bonus := game.Rules().BonusLabel

			if method != "" {
				p, err := a.predictions.Predict(cmd.Context(), game, models.Method(method))
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-22s %s | %s %s\n", p.Method.Label(), utils.PadNumbers(p.MainNumbers), bonus, utils.PadNumbers(p.BonusNumbers))
				return nil
			}

			set, err := a.predictions.GetPredictions(cmd.Context(), game)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s, based on %d draws\n", game.Label(), set.DrawCount)
			for _, p := range set.Ordered() {
				fmt.Fprintf(out, "%-22s %s | %s %s\n", p.Method.Label(), utils.PadNumbers(p.MainNumbers), bonus, utils.PadNumbers(p.BonusNumbers))
			}
			for m, reason := range set.Failures {
				fmt.Fprintf(out, "%-22s unavailable: %s\n", m.Label(), reason)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&method, "method", "m", "", "only run one method (historical_frequency, recent_trend, last_draw_avoidance)")
	return cmd
}
