// Package calendar renders appointment availability as an iCalendar feed.
package calendar

import (
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/guillerg01/date-checker/internal/citas"
)

const productID = "-//date-checker//citas//ES"

// GenerateICS renders one all-day event per available day. Days whose date
// is not ISO formatted are skipped.
func GenerateICS(summary *citas.AvailabilitySummary) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	stamp := time.Now().UTC()
	if summary.LastUpdated != "" {
		if t, err := time.Parse(time.RFC3339, summary.LastUpdated); err == nil {
			stamp = t.UTC()
		}
	}

	for _, day := range summary.AvailableDates {
		start, err := time.Parse("2006-01-02", day.Date)
		if err != nil {
			continue
		}

		event := cal.AddEvent(fmt.Sprintf("citas-%s@citaconsular.es", day.Date))
		event.SetAllDayStartAt(start)
		event.SetAllDayEndAt(start.AddDate(0, 0, 1))
		event.SetDtStampTime(stamp)
		event.SetSummary(fmt.Sprintf("Citas disponibles: %d", day.TotalFreeSlots))
		event.SetDescription(describeDay(day))
	}

	return cal.Serialize()
}

func describeDay(day citas.DayAvailability) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d horarios con %d citas libres", day.TimesCount, day.TotalFreeSlots)
	for _, slot := range day.Times {
		fmt.Fprintf(&b, "\n%s (%d)", slot.Time, slot.FreeSlots)
	}
	return b.String()
}
