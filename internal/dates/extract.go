package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// monthNames maps lowercase Spanish month names to calendar months.
var monthNames = map[string]time.Month{
	"enero":      time.January,
	"febrero":    time.February,
	"marzo":      time.March,
	"abril":      time.April,
	"mayo":       time.May,
	"junio":      time.June,
	"julio":      time.July,
	"agosto":     time.August,
	"septiembre": time.September,
	"octubre":    time.October,
	"noviembre":  time.November,
	"diciembre":  time.December,
}

// Strategy recognizes one date format inside free text. Each strategy scans
// the whole text independently, so a single span may be claimed by more than
// one strategy and produce near-duplicate dates; callers that care about
// duplicates must dedupe themselves.
type Strategy struct {
	Name    string
	pattern *regexp.Regexp
	parse   func(match []string, ref time.Time) (CalendarDate, bool)
}

// Matches returns every date this strategy finds in text, dropping matches
// that do not form a valid calendar date.
func (s Strategy) Matches(text string, ref time.Time) []CalendarDate {
	var out []CalendarDate
	for _, m := range s.pattern.FindAllStringSubmatch(text, -1) {
		if d, ok := s.parse(m, ref); ok {
			out = append(out, d)
		}
	}
	return out
}

// strategies is the fixed check order: named Spanish month, slash-numeric,
// dash-numeric, then the short numeric "<day> de <month>" fallback.
var strategies = []Strategy{
	{
		Name:    "named-month",
		pattern: regexp.MustCompile(`(?i)(\d{1,2})\s+de\s+(enero|febrero|marzo|abril|mayo|junio|julio|agosto|septiembre|octubre|noviembre|diciembre)`),
		parse: func(m []string, ref time.Time) (CalendarDate, bool) {
			day, err := strconv.Atoi(m[1])
			if err != nil {
				return CalendarDate{}, false
			}
			month, ok := monthNames[strings.ToLower(m[2])]
			if !ok {
				return CalendarDate{}, false
			}
			return New(ref.Year(), month, day)
		},
	},
	{
		Name:    "slash-numeric",
		pattern: regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`),
		parse:   parseNumericTriple,
	},
	{
		Name:    "dash-numeric",
		pattern: regexp.MustCompile(`(\d{1,2})-(\d{1,2})-(\d{4})`),
		parse:   parseNumericTriple,
	},
	{
		Name:    "short-numeric",
		pattern: regexp.MustCompile(`(?i)(\d{1,2})\s+de\s+(\d{1,2})`),
		parse: func(m []string, ref time.Time) (CalendarDate, bool) {
			day, err1 := strconv.Atoi(m[1])
			month, err2 := strconv.Atoi(m[2])
			if err1 != nil || err2 != nil {
				return CalendarDate{}, false
			}
			return New(ref.Year(), time.Month(month), day)
		},
	},
}

// parseNumericTriple handles day/month/year matches for the slash and dash
// forms, which share field semantics.
func parseNumericTriple(m []string, _ time.Time) (CalendarDate, bool) {
	day, err1 := strconv.Atoi(m[1])
	month, err2 := strconv.Atoi(m[2])
	year, err3 := strconv.Atoi(m[3])
	if err1 != nil || err2 != nil || err3 != nil {
		return CalendarDate{}, false
	}
	return New(year, time.Month(month), day)
}

// Extract returns every calendar date found in text, in strategy order and
// first-match order within each strategy. Year-less formats default to the
// current calendar year; use ExtractAt to pin the reference year in tests.
func Extract(text string) []CalendarDate {
	return ExtractAt(text, time.Now())
}

// ExtractAt is Extract with an explicit reference time for year defaulting.
// It never fails; unparseable matches are dropped and the scan continues.
func ExtractAt(text string, ref time.Time) []CalendarDate {
	out := make([]CalendarDate, 0)
	for _, s := range strategies {
		out = append(out, s.Matches(text, ref)...)
	}
	return out
}
