// Package cli implements the command-line interface for date-checker.
//
// The cli package provides the Cobra-based CLI with subcommands for one-off
// page checks, appointment availability queries (text/JSON/ICS), the HTTP
// server, scheduled watching with email alerts, and test email delivery.
// It coordinates the checker, citas, notifier, poller and server packages.
package cli
