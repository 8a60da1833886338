package citas

import (
	"encoding/json"
	"sort"
	"time"
)

// TimeSlot is one bookable time on a day with its remaining capacity.
type TimeSlot struct {
	Time      string `json:"time"`
	FreeSlots int    `json:"freeSlots"`
}

// DayAvailability summarizes the open slots of a single day. Days are only
// included in a summary when their total free-slot count is positive, but an
// included day keeps all of its time entries, zero-capacity ones too.
type DayAvailability struct {
	Date           string     `json:"date"`
	TimesCount     int        `json:"timesCount"`
	TotalFreeSlots int        `json:"totalFreeSlots"`
	Times          []TimeSlot `json:"times"`
}

// AvailabilitySummary aggregates the requested date range, sorted by date
// ascending. LastUpdated is the request time, not a slot time.
type AvailabilitySummary struct {
	AvailableDates      []DayAvailability `json:"availableDates"`
	TotalAvailableSlots int               `json:"totalAvailableSlots"`
	TotalAvailableDates int               `json:"totalAvailableDates"`
	LastUpdated         string            `json:"lastUpdated"`
}

// Aggregate unwraps a JSONP-wrapped slot feed and builds the availability
// summary. The inner payload must be shaped date → [{time, freeSlots}].
// On any parse failure no partial summary is returned.
func Aggregate(body []byte, now time.Time) (*AvailabilitySummary, error) {
	payload, err := UnwrapJSONP(body)
	if err != nil {
		return nil, err
	}

	var feed map[string][]TimeSlot
	if err := json.Unmarshal(payload, &feed); err != nil {
		return nil, &ParseError{Reason: "invalid JSON payload", Err: err}
	}

	days := make([]DayAvailability, 0, len(feed))
	for date, slots := range feed {
		total := 0
		for _, s := range slots {
			total += s.FreeSlots
		}
		if total <= 0 {
			continue
		}
		days = append(days, DayAvailability{
			Date:           date,
			TimesCount:     len(slots),
			TotalFreeSlots: total,
			Times:          slots,
		})
	}

	// ISO dates sort correctly as strings.
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	summary := &AvailabilitySummary{
		AvailableDates: days,
		LastUpdated:    now.Format(time.RFC3339),
	}
	for _, d := range days {
		summary.TotalAvailableSlots += d.TotalFreeSlots
	}
	summary.TotalAvailableDates = len(days)
	return summary, nil
}
