package printer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHumanSizes(t *testing.T) {
	tests := map[string]struct {
		got string
		exp string
	}{
		"Bytes below a KiB should be plain.":        {got: humanBytes(512), exp: "512B"},
		"Negative sizes should be zero.":            {got: humanBytes(-1), exp: "0B"},
		"Sizes should use binary units.":            {got: humanBytes(1536), exp: "1.5KiB"},
		"Memory limits should use binary units.":    {got: humanLimit(700 * 1024 * 1024), exp: "700MiB"},
		"A zero memory limit should be unlimited.":  {got: humanLimit(0), exp: "unlimited"},
		"A zero CPU quota should be unlimited.":     {got: humanCPUs(0), exp: "unlimited"},
		"A CPU quota should be in cores.":           {got: humanCPUs(1.5e9), exp: "1.5"},
		"A whole CPU quota should have no decimals": {got: humanCPUs(2e9), exp: "2"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.exp, test.got)
		})
	}
}

func TestHumanSince(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := map[string]struct {
		ago time.Duration
		exp string
	}{
		"Seconds.":         {ago: 40 * time.Second, exp: "40 seconds ago"},
		"About an hour.":   {ago: 62 * time.Minute, exp: "About an hour ago"},
		"Hours.":           {ago: 3 * time.Hour, exp: "3 hours ago"},
		"Days.":            {ago: 4 * 24 * time.Hour, exp: "4 days ago"},
		"Times after now.": {ago: -time.Minute, exp: "in the future"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.exp, humanSince(now.Add(-test.ago), now))
		})
	}
}

func TestTimestampIsUTC(t *testing.T) {
	madrid := time.FixedZone("CET", 60*60)
	assert.Equal(t, "2026-03-10 08:30:00 UTC", timestamp(time.Date(2026, 3, 10, 9, 30, 0, 0, madrid)))
}
