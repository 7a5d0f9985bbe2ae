package catalog

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatFileSize renders n bytes with base-1024 units and at most two
// decimals, trailing zeros dropped: 0 Bytes, 1 KB, 1.5 KB.
func FormatFileSize(n int64) string {
	if n <= 0 {
		return "0 Bytes"
	}

	v, i := float64(n), 0
	for v >= 1024 && i < len(sizeUnits)-1 {
		v /= 1024
		i++
	}

	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizeUnits[i]
}

// FormatRelativeTime describes how long before now t was. Anything 30 days
// or older is shown as a date.
func FormatRelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	mins := int(math.Floor(d.Minutes()))
	hours := int(math.Floor(d.Hours()))
	days := int(math.Floor(d.Hours() / 24))

	switch {
	case mins < 1:
		return "Just now"
	case mins < 60:
		return fmt.Sprintf("%dm ago", mins)
	case hours < 24:
		return fmt.Sprintf("%dh ago", hours)
	case days < 30:
		return fmt.Sprintf("%dd ago", days)
	default:
		return t.Format(time.DateOnly)
	}
}
