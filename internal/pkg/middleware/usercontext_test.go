package middleware

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPremiumCacheValid(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	stamp := func(age time.Duration) string {
		return strconv.FormatInt(now.Add(-age).Unix(), 10)
	}

	tests := []struct {
		name      string
		cached    string
		checkedAt string
		want      bool
	}{
		{"fresh flag is trusted", "1", stamp(time.Minute), true},
		{"fresh negative flag is trusted", "0", stamp(time.Minute), true},
		{"stale flag forces a re-read", "1", stamp(premiumRecheckInterval), false},
		{"missing flag forces a re-read", "", stamp(time.Minute), false},
		{"missing timestamp forces a re-read", "1", "", false},
		{"garbage timestamp forces a re-read", "1", "yesterday", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, premiumCacheValid(tt.cached, tt.checkedAt, now))
		})
	}
}
