package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyflow/internal/input"
	"github.com/abhisek/studyflow/internal/spacedrep"
	"github.com/abhisek/studyflow/internal/ui/theme"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Manage spaced-repetition review items",
}

var reviewAddCmd = &cobra.Command{
	Use:   "add <id>",
	Short: "Start reviewing an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")

		svc, closeFn, err := openService(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		if _, err := svc.AddReviewItem(cmd.Context(), args[0], topic); err != nil {
			return err
		}
		fmt.Println(theme.Good.Render("Added ") + theme.Body.Render(args[0]) + theme.Hint.Render(" (due now)"))
		return nil
	},
}

var reviewGradeCmd = &cobra.Command{
	Use:   "grade <id> <0-5>",
	Short: "Grade how well you recalled an item",
	Long: "Grade recall from 0 (blackout) to 5 (perfect). Grades below 3 " +
		"restart the item's schedule.",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		grade, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("grade must be an integer 0-5, got %q", args[1])
		}

		svc, closeFn, err := openService(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		rs, err := svc.GradeReviewItem(cmd.Context(), input.ReviewGrade{ItemID: args[0], Grade: grade})
		if err != nil {
			return err
		}
		fmt.Println(theme.Title.Render(rs.ItemID))
		fmt.Println(theme.Row("Next review", rs.NextReviewAt.Local().Format("Mon 2006-01-02")))
		fmt.Println(theme.Row("Interval", fmt.Sprintf("%d day(s)", rs.IntervalDays)))
		fmt.Println(theme.Row("Ease", fmt.Sprintf("%.2f", rs.EaseFactor)))
		fmt.Println(theme.Row("Repetitions", fmt.Sprintf("%d", rs.Repetitions)))
		return nil
	},
}

var reviewDueCmd = &cobra.Command{
	Use:   "due",
	Short: "List items due for review, most overdue first",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeFn, err := openService(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		due, err := svc.DueReviews(cmd.Context())
		if err != nil {
			return err
		}
		if len(due) == 0 {
			fmt.Println("Nothing due. Nice work.")
			return nil
		}
		printReviewTable(due, time.Now())
		return nil
	},
}

var reviewListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all review items",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeFn, err := openService(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		items, err := svc.Reviews(cmd.Context())
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Println("No review items yet. Add one with: studyflow review add <id>")
			return nil
		}
		printReviewTable(items, time.Now())
		return nil
	},
}

var reviewRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Stop reviewing an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeFn, err := openService(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		if err := svc.RemoveReviewItem(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Removed", args[0])
		return nil
	},
}

func printReviewTable(items []spacedrep.ReviewState, now time.Time) {
	fmt.Printf("%-24s  %-12s  %-8s  %-6s  %-5s  %s\n", "ID", "Topic", "Status", "Ease", "Reps", "Next")
	fmt.Println(strings.Repeat("─", 78))
	for _, rs := range items {
		next := "-"
		if rs.NextReviewAt != nil {
			next = rs.NextReviewAt.Local().Format("2006-01-02")
		}
		status := rs.Status(now)
		statusText := fmt.Sprintf("%-8s", status)
		if status == spacedrep.ReviewOverdue {
			statusText = theme.Bad.Render(statusText)
		}
		fmt.Printf("%-24s  %-12s  %s  %-6.2f  %-5d  %s\n",
			truncate(rs.ItemID, 24), truncate(rs.Topic, 12), statusText, rs.EaseFactor, rs.Repetitions, next)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func init() {
	reviewAddCmd.Flags().String("topic", "", "Topic the item belongs to")

	reviewCmd.AddCommand(reviewAddCmd)
	reviewCmd.AddCommand(reviewGradeCmd)
	reviewCmd.AddCommand(reviewDueCmd)
	reviewCmd.AddCommand(reviewListCmd)
	reviewCmd.AddCommand(reviewRemoveCmd)
}
