package notifier

import (
	"fmt"
	"time"

	"github.com/guillerg01/date-checker/internal/dates"
)

// DryRunNotifier prints the alert that would be emailed without sending it.
type DryRunNotifier struct{}

// NewDryRunNotifier creates a new dry-run notifier.
func NewDryRunNotifier() *DryRunNotifier {
	return &DryRunNotifier{}
}

// Notify prints the composed alert message.
func (n *DryRunNotifier) Notify(findings []dates.Finding, titleTexts []string) error {
	fmt.Printf("--- Alert (dry run) ---\n")
	fmt.Println(formatAlertMessage(findings, titleTexts, time.Now()))
	return nil
}

// SendTest prints a note instead of sending the test email.
func (n *DryRunNotifier) SendTest() error {
	fmt.Println("--- Test email (dry run) --- transport not contacted")
	return nil
}
