package checker

import (
	"time"

	"github.com/guillerg01/date-checker/internal/dates"
	"github.com/guillerg01/date-checker/internal/logger"
	"github.com/guillerg01/date-checker/internal/notifier"
	"github.com/guillerg01/date-checker/internal/storage"
)

// Alerter runs the alerting variant of the check: collect findings, drop
// ones already notified when a store is configured, and dispatch the rest.
// A dispatch failure is reported as EmailSent=false without failing the
// check itself.
type Alerter struct {
	Checker  *Checker
	Notifier notifier.Notifier
	Store    *storage.Store // nil disables alert dedup
}

// Run performs one alerting cycle and always returns a result bundle.
func (a *Alerter) Run() *AlertResult {
	now := func() string { return time.Now().UTC().Format(time.RFC3339) }
	limitDate := a.Checker.cutoff.FormatES()

	titles, findings, err := a.Checker.Collect()
	if err != nil {
		logger.Error("alert check failed", logger.Fields{"url": a.Checker.url}, err)
		logger.IncrCounter("checks.failed")
		return &AlertResult{
			Success:   false,
			Error:     err.Error(),
			Timestamp: now(),
		}
	}
	logger.IncrCounter("checks.total")

	if len(findings) == 0 {
		return &AlertResult{
			Success:    true,
			Alert:      false,
			Message:    "No se encontraron fechas posteriores al " + limitDate + ".",
			TitleTexts: titles,
			Timestamp:  now(),
		}
	}

	fresh := findings
	if a.Store != nil {
		filtered, ferr := a.Store.FilterNew(findings)
		if ferr != nil {
			// Dedup is best-effort: on a broken log, alert on everything.
			logger.Warn("notified log unreadable, alerting without dedup", logger.Fields{"error": ferr.Error()})
		} else {
			fresh = filtered
		}
	}

	if len(fresh) == 0 {
		logger.Info("future dates already notified, alert suppressed", logger.Fields{
			"findings": len(findings),
		})
		return &AlertResult{
			Success:     true,
			Alert:       true,
			Message:     "Fechas posteriores al " + limitDate + " ya notificadas anteriormente.",
			FutureDates: dates.FormatAll(findings),
			TitleTexts:  titles,
			Timestamp:   now(),
		}
	}

	emailSent := true
	message := "Se encontraron fechas posteriores al " + limitDate + ". Email de alerta enviado."
	if err := a.Notifier.Notify(fresh, titles); err != nil {
		logger.Error("alert dispatch failed", logger.Fields{"findings": len(fresh)}, err)
		emailSent = false
		message = "Se encontraron fechas posteriores al " + limitDate + ", pero el envío del email falló."
	} else if a.Store != nil {
		if merr := a.Store.MarkNotified(fresh); merr != nil {
			logger.Warn("failed to record notified findings", logger.Fields{"error": merr.Error()})
		}
	}

	return &AlertResult{
		Success:     true,
		Alert:       true,
		Message:     message,
		FutureDates: dates.FormatAll(findings),
		TitleTexts:  titles,
		EmailSent:   &emailSent,
		Timestamp:   now(),
	}
}
