package drive

import (
	"math"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
)

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatFileSize renders a byte count in 1024 based units rounded to two
// decimals, e.g. "1.5 KB". Sizes past the largest unit stay in GB.
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	v, i := float64(bytes), 0
	for v >= 1024 && i < len(sizeUnits)-1 {
		v /= 1024
		i++
	}
	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizeUnits[i]
}

// DateLayout is how upload dates are shown, e.g. "Mar 4, 2024".
const DateLayout = "Jan 2, 2006"

// FormatDate renders t in the local time zone. The zero time renders as
// an empty string.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(DateLayout)
}

// FormatRelative renders t relative to now, e.g. "3 days ago".
func FormatRelative(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.Time(t)
}
