package dates

import (
	"crypto/sha1"
	"fmt"
)

// headingPreviewLen caps how much of the source heading the formatted
// finding string embeds.
const headingPreviewLen = 50

// Finding is one confirmed future date together with the heading it was
// found in. Findings are collected in document order of their headings.
type Finding struct {
	Date      CalendarDate `json:"date"`
	Heading   string       `json:"heading"`
	Formatted string       `json:"formatted"`
}

// NewFinding builds a Finding for a date confirmed to be past the cutoff.
// The formatted string matches the alert wording shown to the user:
// `4/8/2025 (en: "Cita 4 de agosto...")`.
func NewFinding(d CalendarDate, heading string) Finding {
	preview := []rune(heading)
	if len(preview) > headingPreviewLen {
		preview = preview[:headingPreviewLen]
	}
	return Finding{
		Date:      d,
		Heading:   heading,
		Formatted: fmt.Sprintf("%s (en: \"%s...\")", d.FormatES(), string(preview)),
	}
}

// Key returns a deterministic identifier for a finding, derived from the
// date and the full source heading. Used to suppress repeated alerts for a
// finding that was already notified.
func (f Finding) Key() string {
	h := sha1.New()
	h.Write([]byte(f.Date.String() + "|" + f.Heading))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// FormatAll returns the formatted strings of a list of findings, in order.
func FormatAll(findings []Finding) []string {
	out := make([]string, 0, len(findings))
	for _, f := range findings {
		out = append(out, f.Formatted)
	}
	return out
}
