// Package format renders backend values for display.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jobfinder/dashboard-go/internal/model"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Currency formats amount as USD with up to two fraction digits.
func Currency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "$0.00"
	}
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + "$" + printer.Sprint(number.Decimal(amount, number.MinFractionDigits(0), number.MaxFractionDigits(2)))
}

const dateLayout = "Jan 2, 2006"

// Date returns "" for the zero time.
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// DateString parses an RFC 3339 timestamp and formats it like Date.
func DateString(s string) string {
	t, ok := parseTime(s)
	if !ok {
		return ""
	}
	return Date(t)
}

func parseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// RelativeTime describes how long before now t happened.
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}

	seconds := int64(now.Sub(t) / time.Second)
	switch {
	case seconds < 60:
		return "just now"
	case seconds < 3600:
		return ago(seconds/60, "minute")
	case seconds < 86400:
		return ago(seconds/3600, "hour")
	case seconds < 2592000:
		return ago(seconds/86400, "day")
	case seconds < 31536000:
		return ago(seconds/2592000, "month")
	default:
		return ago(seconds/31536000, "year")
	}
}

func ago(n int64, unit string) string {
	if n != 1 {
		unit += "s"
	}
	return fmt.Sprintf("%d %s ago", n, unit)
}

// Since is RelativeTime measured against the wall clock.
func Since(t time.Time) string {
	return RelativeTime(t, time.Now())
}

// Number abbreviates thousands and millions, e.g. 1.5K or 2.3M.
func Number(n float64) string {
	if math.IsNaN(n) {
		return "0"
	}
	switch {
	case n >= 1_000_000:
		return abbreviate(n/1_000_000) + "M"
	case n >= 1_000:
		return abbreviate(n/1_000) + "K"
	default:
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
}

func abbreviate(n float64) string {
	return strings.TrimSuffix(strconv.FormatFloat(n, 'f', 1, 64), ".0")
}

type Tone string

const (
	ToneMuted       Tone = "muted"
	ToneSuccess     Tone = "success"
	ToneInfo        Tone = "info"
	ToneWarning     Tone = "warning"
	ToneDestructive Tone = "destructive"
)

// Score is a match score ready for display.
type Score struct {
	Score int
	Label string
	Tone  Tone
}

func (s Score) String() string {
	if s.Label == "N/A" {
		return s.Label
	}
	return fmt.Sprintf("%d%% %s", s.Score, s.Label)
}

var scoreNA = Score{Score: 0, Label: "N/A", Tone: ToneMuted}

// MatchScore rounds score half up and labels it.
func MatchScore(score float64) Score {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return scoreNA
	}

	rounded := int(math.Floor(score + 0.5))
	switch {
	case rounded >= 90:
		return Score{Score: rounded, Label: "Excellent", Tone: ToneSuccess}
	case rounded >= 70:
		return Score{Score: rounded, Label: "Good", Tone: ToneInfo}
	case rounded >= 50:
		return Score{Score: rounded, Label: "Decent", Tone: ToneWarning}
	default:
		return Score{Score: rounded, Label: "Low", Tone: ToneDestructive}
	}
}

// JobMatchScore treats a missing score as N/A.
func JobMatchScore(score *float64) Score {
	if score == nil {
		return scoreNA
	}
	return MatchScore(*score)
}

// Truncate cuts text to maxLength runes and appends "...".
func Truncate(text string, maxLength int) string {
	if text == "" {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	return strings.TrimSpace(string(runes[:maxLength])) + "..."
}

// Budget describes a job's budget. Zero bounds count as missing.
func Budget(job *model.Job) string {
	if job == nil {
		return "N/A"
	}

	lo, hi := job.BudgetMin, job.BudgetMax
	if job.BudgetType == model.BudgetTypeHourly {
		switch {
		case lo != 0 && hi != 0:
			return Currency(lo) + " - " + Currency(hi) + "/hr"
		case lo != 0:
			return Currency(lo) + "/hr"
		default:
			return model.BudgetTypeHourly.Label()
		}
	}

	switch {
	case lo != 0 && hi != 0:
		return Currency(lo) + " - " + Currency(hi)
	case lo != 0:
		return Currency(lo)
	default:
		return model.BudgetTypeFixed.Label()
	}
}
