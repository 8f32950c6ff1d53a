package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyflow/internal/input"
	"github.com/abhisek/studyflow/internal/session"
	"github.com/abhisek/studyflow/internal/ui/theme"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log a finished study session and collect XP",
	Long: "Log a finished study session. Ratings come from flags, or from a JSON " +
		"document with --file (use - for stdin).",
	RunE: func(cmd *cobra.Command, args []string) error {
		fb, err := feedbackFromFlags(cmd)
		if err != nil {
			return err
		}

		svc, closeFn, err := openService(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		date, err := dateFlag(cmd, svc)
		if err != nil {
			return err
		}
		res, err := svc.Complete(cmd.Context(), fb, date)
		if err != nil {
			return fmt.Errorf("log session: %w", err)
		}
		printSessionResult(res)
		return nil
	},
}

func feedbackFromFlags(cmd *cobra.Command) (input.SessionFeedback, error) {
	var fb input.SessionFeedback

	if file, _ := cmd.Flags().GetString("file"); file != "" {
		var (
			raw []byte
			err error
		)
		if file == "-" {
			raw, err = io.ReadAll(os.Stdin)
		} else {
			raw, err = os.ReadFile(file)
		}
		if err != nil {
			return fb, fmt.Errorf("read feedback: %w", err)
		}
		if err := input.Decode(input.SchemaSessionFeedback, raw, &fb); err != nil {
			return fb, err
		}
		return fb, nil
	}

	for _, name := range []string{"understanding", "difficulty", "mood", "completion"} {
		if !cmd.Flags().Changed(name) {
			return fb, fmt.Errorf("--%s is required unless --file is given", name)
		}
	}
	fb.Topic, _ = cmd.Flags().GetString("topic")
	fb.Phase, _ = cmd.Flags().GetString("phase")
	fb.Understanding, _ = cmd.Flags().GetInt("understanding")
	fb.Difficulty, _ = cmd.Flags().GetInt("difficulty")
	fb.MoodAfter, _ = cmd.Flags().GetInt("mood")
	fb.CompletionRate, _ = cmd.Flags().GetFloat64("completion")
	fb.DayType, _ = cmd.Flags().GetString("tier")
	return fb, nil
}

func printSessionResult(res *session.SessionResult) {
	a := res.Award
	fmt.Println(theme.Title.Render("Session logged"))
	fmt.Println(theme.Row("Quality", fmt.Sprintf("%.2f (%s)", res.Quality, res.QualityLabel.DisplayName())))
	fmt.Println(theme.Row("Day type", res.DayType.DisplayName()))
	fmt.Println(theme.Row("XP earned", theme.Good.Render(fmt.Sprintf("+%d", a.XPEarned))))
	fmt.Println(theme.Row("Total XP", fmt.Sprintf("%d", a.TotalXP)))
	fmt.Println(theme.Row("Streak", fmt.Sprintf("%d (best %d)", a.Streak, a.LongestStreak)))
	if a.LeveledUp {
		fmt.Println(theme.Highlight.Render(fmt.Sprintf("Level up! %d → %d", a.PreviousLevel, a.Level)))
	} else {
		fmt.Println(theme.Row("Level", fmt.Sprintf("%d", a.Level)))
	}
	for _, b := range a.BadgesUnlocked {
		fmt.Println(theme.Highlight.Render(fmt.Sprintf("%s Badge unlocked: %s", b.Icon(), b.DisplayName())))
	}
	fmt.Println(theme.Hint.Render("session " + res.SessionID))
}

func init() {
	logCmd.Flags().String("topic", "", "Topic studied")
	logCmd.Flags().String("phase", "", "Study phase")
	logCmd.Flags().Int("understanding", 0, "Understanding 1-5")
	logCmd.Flags().Int("difficulty", 0, "Difficulty 1-5")
	logCmd.Flags().Int("mood", 0, "Mood after the session 1-5")
	logCmd.Flags().Float64("completion", 0, "Completion rate 0-100")
	logCmd.Flags().String("tier", "", "Day type override: minimum, normal, beast or recovery")
	logCmd.Flags().String("file", "", "Read session feedback JSON from a file (- for stdin)")
	addDateFlag(logCmd)
}
