package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent study sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		svc, closeFn, err := openService(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		sessions, err := svc.History(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Println("No sessions logged yet.")
			return nil
		}

		fmt.Printf("%-10s  %-16s  %-9s  %-7s  %-5s  %-5s  %s\n",
			"Date", "Topic", "Day type", "Quality", "XP", "Level", "Streak")
		fmt.Println(strings.Repeat("─", 72))
		for _, e := range sessions {
			fmt.Printf("%-10s  %-16s  %-9s  %-7.2f  %-5d  %-5d  %d\n",
				e.Date, truncate(e.Topic, 16), e.DayType, e.Quality, e.XPEarned, e.Level, e.Streak)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum sessions to show")
}
