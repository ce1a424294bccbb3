package domain

import "time"

// FAQEntry is a published question/answer pair with usage counters.
type FAQEntry struct {
	ID             string
	Question       string
	Answer         string
	Category       string
	ViewCount      int
	HelpfulCount   int
	UnhelpfulCount int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HelpfulRatio returns the helpful share of votes. ok is false when the
// entry has no votes at all, so callers render "no data" instead of NaN.
func (f *FAQEntry) HelpfulRatio() (ratio float64, ok bool) {
	total := f.HelpfulCount + f.UnhelpfulCount
	if total == 0 {
		return 0, false
	}
	return float64(f.HelpfulCount) / float64(total), true
}
