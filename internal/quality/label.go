package quality

// Label is a display bucket for a quality score.
type Label string

const (
	LabelExcellent  Label = "excellent"
	LabelGood       Label = "good"
	LabelFair       Label = "fair"
	LabelPoor       Label = "poor"
	LabelStruggling Label = "struggling"
)

// AllLabels returns all labels from best to worst.
func AllLabels() []Label {
	return []Label{LabelExcellent, LabelGood, LabelFair, LabelPoor, LabelStruggling}
}

// LabelFor buckets a quality score. Thresholds are inclusive lower bounds.
func LabelFor(score float64) Label {
	switch {
	case score >= 0.8:
		return LabelExcellent
	case score >= 0.6:
		return LabelGood
	case score >= 0.4:
		return LabelFair
	case score >= 0.2:
		return LabelPoor
	default:
		return LabelStruggling
	}
}

// DisplayName returns a human-readable label.
func (l Label) DisplayName() string {
	switch l {
	case LabelExcellent:
		return "Excellent"
	case LabelGood:
		return "Good"
	case LabelFair:
		return "Fair"
	case LabelPoor:
		return "Poor"
	case LabelStruggling:
		return "Struggling"
	default:
		return string(l)
	}
}
