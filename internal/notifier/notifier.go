package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/guillerg01/date-checker/internal/dates"
)

// Notifier defines the interface for dispatching future-date alerts.
type Notifier interface {
	// Notify sends an alert for the given findings along with the headings
	// that were analyzed.
	Notify(findings []dates.Finding, titleTexts []string) error
	// SendTest sends a fixed test message through the same transport.
	SendTest() error
}

// maxHeadingsInAlert caps how many analyzed headings the alert body lists.
const maxHeadingsInAlert = 3

// formatAlertMessage composes the Spanish alert body listing every finding
// and the first few analyzed headings.
func formatAlertMessage(findings []dates.Finding, titleTexts []string, at time.Time) string {
	var b strings.Builder

	b.WriteString("🚨 ALERTA IMPORTANTE\n\n")
	fmt.Fprintf(&b, "Se encontraron %d fechas posteriores a la fecha límite.\n\n", len(findings))

	b.WriteString("FECHAS ENCONTRADAS:\n")
	for _, f := range findings {
		fmt.Fprintf(&b, "• %s\n", f.Formatted)
	}

	b.WriteString("\nTÍTULOS ANALIZADOS:\n")
	titles := titleTexts
	if len(titles) > maxHeadingsInAlert {
		titles = titles[:maxHeadingsInAlert]
	}
	for _, title := range titles {
		fmt.Fprintf(&b, "• %s\n", title)
	}

	fmt.Fprintf(&b, "\nHora de la alerta: %s\n\n", formatTimestampES(at))
	b.WriteString("Sistema de Monitoreo Automático\n")

	return b.String()
}

// formatTimestampES renders a timestamp the way es-ES toLocaleString does:
// d/m/yyyy, hh:mm:ss.
func formatTimestampES(t time.Time) string {
	return t.Format("2/1/2006, 15:04:05")
}
