package checker

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/guillerg01/date-checker/internal/dates"
	"github.com/guillerg01/date-checker/internal/headings"
	"github.com/guillerg01/date-checker/internal/logger"
)

const (
	// DefaultTargetURL is the consulate news article being monitored.
	DefaultTargetURL = "https://www.exteriores.gob.es/Consulados/lahabana/es/Comunicacion/Noticias/Paginas/Articulos/Solicitud-de-pasaportes.aspx"

	// Timeout bounds the page fetch.
	Timeout = 30 * time.Second
)

// DefaultCutoff is 31 July 2025. Dates strictly after it count as findings.
var DefaultCutoff = dates.CalendarDate{Year: 2025, Month: time.July, Day: 31}

// browserHeaders mimic a desktop browser; the consulate site degrades or
// blocks bare requests. Accept-Encoding is left to the transport so gzip
// responses are decompressed transparently.
var browserHeaders = map[string]string{
	"User-Agent":                "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language":           "es-ES,es;q=0.8,en-US;q=0.5,en;q=0.3",
	"Connection":                "keep-alive",
	"Upgrade-Insecure-Requests": "1",
}

// Checker runs page checks against a single target URL and cutoff date.
// Each check is an independent, stateless request cycle.
type Checker struct {
	client *http.Client
	url    string
	cutoff dates.CalendarDate
	now    func() time.Time
}

// New creates a Checker. An empty url falls back to the consulate default;
// a zero cutoff falls back to DefaultCutoff.
func New(url string, cutoff dates.CalendarDate) *Checker {
	if url == "" {
		url = DefaultTargetURL
	}
	if cutoff == (dates.CalendarDate{}) {
		cutoff = DefaultCutoff
	}
	return &Checker{
		client: &http.Client{Timeout: Timeout},
		url:    url,
		cutoff: cutoff,
		now:    time.Now,
	}
}

// fetchPage fetches and parses the target page, returning the document plus
// the HTTP status and raw content length.
func (c *Checker) fetchPage() (*goquery.Document, int, int, error) {
	req, err := http.NewRequest("GET", c.url, nil)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("creating request: %w", err)
	}
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, 0, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, 0, fmt.Errorf("reading page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, resp.StatusCode, len(body), fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, resp.StatusCode, len(body), nil
}

// scan extracts dates from every heading and keeps those strictly after the
// cutoff, in document order of the headings.
func (c *Checker) scan(titles []string) []dates.Finding {
	findings := make([]dates.Finding, 0)
	ref := c.now()
	for _, title := range titles {
		for _, d := range dates.ExtractAt(title, ref) {
			if d.After(c.cutoff) {
				findings = append(findings, dates.NewFinding(d, title))
			}
		}
	}
	return findings
}

// Check runs the full page check and always returns a result bundle; any
// failure is folded into a failure bundle instead of an error.
func (c *Checker) Check() *CheckResult {
	began := c.now()

	doc, status, contentLength, err := c.fetchPage()
	if err != nil {
		logger.Error("consulate check failed", logger.Fields{"url": c.url}, err)
		logger.IncrCounter("checks.failed")
		return &CheckResult{
			Success:   false,
			Error:     err.Error(),
			Timestamp: c.now().UTC().Format(time.RFC3339),
		}
	}

	titles := headings.Collect(doc)
	findings := c.scan(titles)
	meta := headings.PageMeta(doc)
	found := len(findings) > 0
	limitDate := c.cutoff.FormatES()

	logger.RecordTiming("checks.page", time.Since(began))
	logger.IncrCounter("checks.total")
	logger.Info("consulate check completed", logger.Fields{
		"titles":       len(titles),
		"future_dates": len(findings),
	})

	message := "❌ No se encontraron fechas posteriores al " + limitDate + " en títulos"
	if found {
		message = "✅ Se encontraron fechas posteriores al " + limitDate + " en títulos"
	}

	return &CheckResult{
		Success: true,
		Check: &CheckInfo{
			URL:             c.url,
			Status:          status,
			ContentLength:   contentLength,
			TitleTexts:      titles,
			FoundFutureDate: found,
			FutureDates:     dates.FormatAll(findings),
			LimitDate:       limitDate,
			PageTitle:       meta.Title,
			PageH1:          meta.H1,
			Timestamp:       c.now().UTC().Format(time.RFC3339),
		},
		Confidence: scoreConfidence(found, len(titles), limitDate),
		Result: &Verdict{
			FoundFutureDate: found,
			Message:         message,
		},
	}
}

// Collect fetches the page and returns the collected headings plus the
// future-date findings. Used by the alerting variant, which needs findings
// before deciding whether to dispatch.
func (c *Checker) Collect() ([]string, []dates.Finding, error) {
	doc, _, _, err := c.fetchPage()
	if err != nil {
		return nil, nil, err
	}
	titles := headings.Collect(doc)
	return titles, c.scan(titles), nil
}
