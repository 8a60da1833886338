package calendar

import (
	"strings"
	"testing"

	"github.com/guillerg01/date-checker/internal/citas"
)

func TestGenerateICS(t *testing.T) {
	summary := &citas.AvailabilitySummary{
		AvailableDates: []citas.DayAvailability{
			{
				Date:           "2025-10-03",
				TimesCount:     2,
				TotalFreeSlots: 5,
				Times: []citas.TimeSlot{
					{Time: "09:00", FreeSlots: 2},
					{Time: "10:30", FreeSlots: 3},
				},
			},
			{
				Date:           "2025-10-07",
				TimesCount:     1,
				TotalFreeSlots: 1,
				Times:          []citas.TimeSlot{{Time: "12:00", FreeSlots: 1}},
			},
		},
		TotalAvailableSlots: 6,
		TotalAvailableDates: 2,
		LastUpdated:         "2025-10-01T08:00:00Z",
	}

	out := GenerateICS(summary)

	if !strings.Contains(out, "BEGIN:VCALENDAR") || !strings.Contains(out, "END:VCALENDAR") {
		t.Fatalf("not a calendar:\n%s", out)
	}
	if got := strings.Count(out, "BEGIN:VEVENT"); got != 2 {
		t.Errorf("event count = %d, want 2", got)
	}
	if !strings.Contains(out, "UID:citas-2025-10-03@citaconsular.es") {
		t.Error("missing UID for first day")
	}
	if !strings.Contains(out, "SUMMARY:Citas disponibles: 5") {
		t.Error("missing summary with slot count")
	}
	if !strings.Contains(out, "DTSTART;VALUE=DATE:20251003") {
		t.Error("missing all-day start")
	}
	if !strings.Contains(out, "METHOD:PUBLISH") {
		t.Error("missing publish method")
	}
}

func TestGenerateICS_SkipsMalformedDates(t *testing.T) {
	summary := &citas.AvailabilitySummary{
		AvailableDates: []citas.DayAvailability{
			{Date: "03/10/2025", TotalFreeSlots: 1},
			{Date: "2025-10-07", TotalFreeSlots: 1},
		},
	}

	out := GenerateICS(summary)
	if got := strings.Count(out, "BEGIN:VEVENT"); got != 1 {
		t.Errorf("event count = %d, want 1", got)
	}
}

func TestGenerateICS_Empty(t *testing.T) {
	out := GenerateICS(&citas.AvailabilitySummary{})
	if strings.Contains(out, "BEGIN:VEVENT") {
		t.Error("empty summary should produce no events")
	}
	if !strings.Contains(out, "BEGIN:VCALENDAR") {
		t.Error("still a valid empty calendar")
	}
}
