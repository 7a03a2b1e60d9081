package printer

import (
	"strconv"
	"time"

	units "github.com/docker/go-units"
)

const timestampLayout = "2006-01-02 15:04:05 UTC"

// humanBytes uses binary units: 512B, 1.5KiB, 2GiB.
func humanBytes(n int64) string {
	return units.BytesSize(float64(max(n, 0)))
}

// humanLimit is like humanBytes but a zero limit means there is no limit.
func humanLimit(n int64) string {
	if n <= 0 {
		return "unlimited"
	}
	return humanBytes(n)
}

func humanCPUs(nanoCPUs int64) string {
	if nanoCPUs <= 0 {
		return "unlimited"
	}
	return strconv.FormatFloat(float64(nanoCPUs)/1e9, 'f', -1, 64)
}

// humanSince returns how long ago t was from now, e.g. "About an hour ago".
func humanSince(t, now time.Time) string {
	d := now.Sub(t)
	if d < 0 {
		return "in the future"
	}
	return units.HumanDuration(d) + " ago"
}

func timestamp(t time.Time) string { return t.UTC().Format(timestampLayout) }
