package main

import (
	"fmt"
	"os"

	"github.com/guillerg01/date-checker/internal/calendar"
	"github.com/guillerg01/date-checker/internal/citas"
)

func main() {
	// Create a sample availability summary
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
		},
		TotalAvailableSlots: 5,
		TotalAvailableDates: 1,
		LastUpdated:         "2025-10-01T08:00:00Z",
	}

	// Generate .ics file
	icsContent := calendar.GenerateICS(summary)

	// Write to file (owner read/write only for security)
	filename := "test-citas.ics"
	if err := os.WriteFile(filename, []byte(icsContent), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s. Open it in a calendar app to verify the event renders.\n", filename)
	fmt.Println("---")
	fmt.Println(icsContent)
}
