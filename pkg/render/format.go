package render

import (
	"html"
	"strconv"
	"strings"
	"time"

	"protodoc/pkg/document"
)

// Date formats for rendered values. The document medium is print-oriented,
// so formats are fixed rather than locale-dependent.
const (
	dateLayout     = "Jan 02, 2006"
	dateTimeLayout = "Jan 02, 2006, 03:04 PM"
)

// Escape escapes text for the target markup. All renderer output passes
// through here before the wrapper sees it.
func Escape(s string) string {
	return html.EscapeString(s)
}

// FormatNumber renders a numeric payload value with a fixed two-decimal
// convention. A nil value renders as the empty string, never "0" or "NaN".
func FormatNumber(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

// FormatDate renders a date-only value as "MMM dd, yyyy".
// A nil value renders as the empty string.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

// FormatDateTime renders a date-time value as "MMM dd, yyyy, hh:mm a".
// When convert is set the value is shifted by offsetHours before
// formatting. A nil value renders as the empty string.
func FormatDateTime(t *time.Time, offsetHours int, convert bool) string {
	if t == nil {
		return ""
	}
	v := *t
	if convert {
		v = v.Add(time.Duration(offsetHours) * time.Hour)
	}
	return v.Format(dateTimeLayout)
}

// hardBreaks replaces literal newlines with the explicit line-break
// marker the wrapper honors as a hard break.
func hardBreaks(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", document.LineBreak)
}
