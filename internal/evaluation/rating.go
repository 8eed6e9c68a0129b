package evaluation

// Rating is a coarse label for the overall score.
type Rating string

const (
	RatingNone             Rating = ""
	RatingExcellent        Rating = "Excellent"
	RatingGood             Rating = "Good"
	RatingAverage          Rating = "Average"
	RatingNeedsImprovement Rating = "Needs Improvement"
)

// Percentage returns TotalScore as a share of MaxScore, 0 when nothing was scored.
func (r Result) Percentage() float64 {
	if r.MaxScore <= 0 {
		return 0
	}
	return float64(r.TotalScore) / float64(r.MaxScore) * 100
}

// Rating maps the percentage to a label. Results with no questions have no rating.
func (r Result) Rating() Rating {
	if r.MaxScore <= 0 {
		return RatingNone
	}

	switch p := r.Percentage(); {
	case p >= 80:
		return RatingExcellent
	case p >= 60:
		return RatingGood
	case p >= 40:
		return RatingAverage
	default:
		return RatingNeedsImprovement
	}
}

// Stars renders the rating the way the summary screen shows it.
func (r Rating) Stars() string {
	switch r {
	case RatingExcellent:
		return "⭐⭐⭐⭐⭐"
	case RatingGood:
		return "⭐⭐⭐⭐"
	case RatingAverage:
		return "⭐⭐⭐"
	case RatingNeedsImprovement:
		return "⭐⭐"
	default:
		return ""
	}
}
