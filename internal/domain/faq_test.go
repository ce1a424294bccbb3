package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHelpfulRatioWithoutVotes(t *testing.T) {
	entry := FAQEntry{ViewCount: 42}
	ratio, ok := entry.HelpfulRatio()
	assert.False(t, ok)
	assert.Zero(t, ratio)
}

func TestHelpfulRatio(t *testing.T) {
	entry := FAQEntry{HelpfulCount: 3, UnhelpfulCount: 1}
	ratio, ok := entry.HelpfulRatio()
	assert.True(t, ok)
	assert.InDelta(t, 0.75, ratio, 1e-9)
}
