package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyflow/internal/input"
	"github.com/abhisek/studyflow/internal/session"
	"github.com/abhisek/studyflow/internal/ui/theme"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan today's study session from your energy level",
	RunE: func(cmd *cobra.Command, args []string) error {
		energy, _ := cmd.Flags().GetFloat64("energy")
		timeBlock, _ := cmd.Flags().GetInt("time")
		topic, _ := cmd.Flags().GetString("topic")
		phase, _ := cmd.Flags().GetString("phase")
		day, _ := cmd.Flags().GetString("day")
		asJSON, _ := cmd.Flags().GetBool("json")

		req := input.PlanRequest{
			Energy:    energy,
			TimeBlock: timeBlock,
			Topic:     topic,
			Phase:     phase,
			Day:       day,
		}
		if cmd.Flags().Changed("respect-input") {
			respect, _ := cmd.Flags().GetBool("respect-input")
			req.RespectUserInput = &respect
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
		res, err := svc.Plan(cmd.Context(), req, date)
		if err != nil {
			return fmt.Errorf("plan: %w", err)
		}

		if asJSON {
			return writePlanJSON(res, date.String())
		}
		printPlan(res)
		return nil
	},
}

type planJSON struct {
	Date              string   `json:"date"`
	Topic             string   `json:"topic,omitempty"`
	Phase             string   `json:"phase,omitempty"`
	DayType           string   `json:"day_type"`
	Rule              string   `json:"rule"`
	Energy            float64  `json:"energy"`
	TimeBudgetMinutes int      `json:"time_budget_minutes"`
	EmphasizeReview   bool     `json:"emphasize_review"`
	Insights          []string `json:"insights"`
	DueReviews        []string `json:"due_reviews"`
}

func writePlanJSON(res *session.PlanResult, date string) error {
	p := res.Plan
	out := planJSON{
		Date:              date,
		Topic:             p.Topic,
		Phase:             p.Phase,
		DayType:           string(p.DayType),
		Rule:              string(p.Rule),
		Energy:            p.Energy,
		TimeBudgetMinutes: p.TimeBudgetMinutes,
		EmphasizeReview:   p.EmphasizeReview,
		Insights:          nonNil(p.Insights),
		DueReviews:        nonNil(res.DueItems),
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printPlan(res *session.PlanResult) {
	p := res.Plan
	fmt.Println(theme.Title.Render(fmt.Sprintf("%s day", p.DayType.DisplayName())))
	fmt.Println(theme.Row("Time budget", fmt.Sprintf("%d min", p.TimeBudgetMinutes)))
	fmt.Println(theme.Row("Energy", fmt.Sprintf("%.1f", p.Energy)))
	if p.Topic != "" {
		fmt.Println(theme.Row("Topic", p.Topic))
	}
	if p.Phase != "" {
		fmt.Println(theme.Row("Phase", p.Phase))
	}
	fmt.Println(theme.Hint.Render("rule: " + string(p.Rule)))

	for _, line := range p.Insights {
		fmt.Println(theme.Highlight.Render("» ") + theme.Body.Render(line))
	}
	if len(res.DueItems) > 0 {
		fmt.Println(theme.Row("Due reviews", fmt.Sprintf("%d (%s)", len(res.DueItems), joinLimit(res.DueItems, 5))))
	}
}

func init() {
	planCmd.Flags().Float64("energy", 0, "Energy level 1-5 (required)")
	planCmd.Flags().Int("time", 0, "Minutes available (default plan.base_minutes)")
	planCmd.Flags().String("topic", "", "Topic to study")
	planCmd.Flags().String("phase", "", "Study phase, e.g. learn or revise")
	planCmd.Flags().String("day", "", "Day context, e.g. monday")
	planCmd.Flags().Bool("respect-input", false, "Use the energy exactly as given")
	planCmd.Flags().Bool("json", false, "Print the plan as JSON")
	addDateFlag(planCmd)
	_ = planCmd.MarkFlagRequired("energy")
}
