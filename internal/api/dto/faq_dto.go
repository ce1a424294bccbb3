package dto

import "time"

// FAQRequest payload for create and update.
type FAQRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
}

// FAQVoteRequest payload.
type FAQVoteRequest struct {
	Helpful bool `json:"helpful"`
}

// FAQResponse response. HelpfulRatio is omitted entirely when the entry
// has no votes.
type FAQResponse struct {
	ID             string    `json:"id"`
	Question       string    `json:"question"`
	Answer         string    `json:"answer"`
	Category       string    `json:"category,omitempty"`
	ViewCount      int       `json:"view_count"`
	HelpfulCount   int       `json:"helpful_count"`
	UnhelpfulCount int       `json:"unhelpful_count"`
	HelpfulRatio   *float64  `json:"helpful_ratio,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
