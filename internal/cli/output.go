package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/guillerg01/date-checker/internal/checker"
	"github.com/guillerg01/date-checker/internal/citas"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatICS  OutputFormat = "ics"
)

// WriteCheckResult writes a page check result in the specified format
func WriteCheckResult(w io.Writer, res *checker.CheckResult, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, res)
	}
	return writeCheckText(w, res)
}

func writeCheckText(w io.Writer, res *checker.CheckResult) error {
	if !res.Success {
		fmt.Fprintf(w, "Check failed: %s\n", res.Error)
		return nil
	}

	fmt.Fprintln(w, res.Result.Message)
	fmt.Fprintf(w, "Confianza: %d%% (%s) - %s\n", res.Confidence.Percentage, res.Confidence.Level, res.Confidence.Reason)
	fmt.Fprintf(w, "Títulos examinados: %d\n", len(res.Check.TitleTexts))
	for _, d := range res.Check.FutureDates {
		fmt.Fprintf(w, "  %s\n", d)
	}
	return nil
}

// WriteAvailability writes an availability summary in the specified format
func WriteAvailability(w io.Writer, summary *citas.AvailabilitySummary, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, summary)
	}
	return writeAvailabilityText(w, summary)
}

func writeAvailabilityText(w io.Writer, summary *citas.AvailabilitySummary) error {
	if summary.TotalAvailableDates == 0 {
		fmt.Fprintln(w, "No hay citas disponibles.")
		return nil
	}

	for _, day := range summary.AvailableDates {
		fmt.Fprintf(w, "%s: %d citas libres en %d horarios\n", day.Date, day.TotalFreeSlots, day.TimesCount)
		for _, slot := range day.Times {
			fmt.Fprintf(w, "  %s (%d)\n", slot.Time, slot.FreeSlots)
		}
	}
	fmt.Fprintf(w, "\nTotal: %d citas en %d días\n", summary.TotalAvailableSlots, summary.TotalAvailableDates)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
