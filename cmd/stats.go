package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyflow/internal/gamification"
	"github.com/abhisek/studyflow/internal/session"
	"github.com/abhisek/studyflow/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeFn, err := openService(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		st, err := svc.Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("load stats: %w", err)
		}
		fmt.Println(renderStats(st))
		return nil
	},
}

func renderStats(st *session.Stats) string {
	p := st.Progress
	levelXP := p.TotalXP % gamification.XPPerLevel
	frac := float64(levelXP) / float64(gamification.XPPerLevel)

	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("Level %d", p.Level)) + "\n")
	b.WriteString(theme.Bar(frac, 24) + theme.Hint.Render(fmt.Sprintf("  %d XP to next level", st.XPToNextLevel)) + "\n\n")
	b.WriteString(theme.Row("Total XP", fmt.Sprintf("%d", p.TotalXP)) + "\n")
	b.WriteString(theme.Row("Streak", fmt.Sprintf("%d (best %d)", p.CurrentStreak, p.LongestStreak)) + "\n")
	b.WriteString(theme.Row("Sessions", fmt.Sprintf("%d", st.Sessions)) + "\n")
	if st.Energy.Days > 0 {
		b.WriteString(theme.Row("Avg energy", fmt.Sprintf("%.1f over %d plans", st.Energy.Average, st.Energy.Days)) + "\n")
	}
	b.WriteString(theme.Row("Reviews", fmt.Sprintf("%d tracked, %d due", st.ReviewItems, st.DueReviews)) + "\n")

	var badges []string
	for _, badge := range gamification.AllBadges() {
		if p.HasBadge(badge) {
			badges = append(badges, badge.Icon()+" "+badge.DisplayName())
		} else {
			badges = append(badges, theme.Hint.Render("· "+badge.DisplayName()))
		}
	}
	b.WriteString(theme.Row("Badges", strings.Join(badges, "  ")) + "\n")

	if len(st.WeakTopics) > 0 {
		var weak []string
		for _, tq := range st.WeakTopics {
			weak = append(weak, fmt.Sprintf("%s (%.2f)", tq.Topic, tq.Mean))
		}
		b.WriteString(theme.Row("Weak topics", theme.Bad.Render(strings.Join(weak, ", "))) + "\n")
	}
	return theme.Card.Render(strings.TrimRight(b.String(), "\n"))
}
