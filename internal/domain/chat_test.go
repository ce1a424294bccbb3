package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDurationUsesEndedAtWhenSet(t *testing.T) {
	start := time.Date(2025, 8, 12, 9, 0, 0, 0, time.UTC)
	end := start.Add(17 * time.Minute)
	session := ChatSession{StartedAt: start, EndedAt: &end}

	// a later "now" must not stretch the duration of an ended session
	now := end.Add(2 * time.Hour)
	assert.Equal(t, 17*time.Minute, session.Duration(now))
}

func TestDurationOfLiveSessionTracksClock(t *testing.T) {
	start := time.Date(2025, 8, 12, 9, 0, 0, 0, time.UTC)
	session := ChatSession{StartedAt: start}

	assert.Equal(t, 5*time.Minute, session.Duration(start.Add(5*time.Minute)))
}
