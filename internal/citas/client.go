package citas

import (
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"github.com/guillerg01/date-checker/internal/logger"
)

const (
	// DefaultBaseURL is the booking widget's datetime feed endpoint.
	DefaultBaseURL = "https://www.citaconsular.es/onlinebookings/datetime/"

	// Widget identity of the consulate agenda being monitored.
	DefaultPublicKey = "22091b5b8d43b89fb226cabb272a844f9"
	DefaultServiceID = "bkt932613"
	DefaultAgendaID  = "bkt322861"

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	timeout   = 10 * time.Second
)

// Client fetches the booking widget's slot feed. One shot, no retries;
// every call is an independent request with a fresh cache-busting token.
type Client struct {
	baseURL    string
	publicKey  string
	serviceID  string
	agendaID   string
	httpClient *http.Client
	now        func() time.Time
}

// NewClient creates a booking feed client. Empty arguments fall back to the
// published widget defaults.
func NewClient(baseURL, publicKey, serviceID, agendaID string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if publicKey == "" {
		publicKey = DefaultPublicKey
	}
	if serviceID == "" {
		serviceID = DefaultServiceID
	}
	if agendaID == "" {
		agendaID = DefaultAgendaID
	}
	return &Client{
		baseURL:    baseURL,
		publicKey:  publicKey,
		serviceID:  serviceID,
		agendaID:   agendaID,
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
	}
}

// BuildURL assembles the feed URL for a date range, including the dynamic
// jQuery-style callback identifier and cache-busting timestamp the widget
// expects from its embedding page.
func (c *Client) BuildURL(start, end string) string {
	millis := c.now().UnixMilli()

	params := url.Values{}
	params.Set("type", "default")
	params.Set("lang", "es")
	params.Set("version", "5")
	params.Set("selectedPeople", "1")
	params.Set("callback", newCallback(millis))
	params.Set("publickey", c.publicKey)
	params.Set("services[]", c.serviceID)
	params.Set("agendas[]", c.agendaID)
	params.Set("start", start)
	params.Set("end", end)
	params.Set("src", fmt.Sprintf("https://www.citaconsular.es/es/hosteds/widgetdefault/%s/", c.publicKey))
	params.Set("srvsrc", "https://citaconsular.es")
	params.Set("_", fmt.Sprintf("%d", millis))

	return c.baseURL + "?" + params.Encode()
}

// FetchAvailability fetches and aggregates the slot feed for [start, end],
// both ISO dates. Network failures and malformed feeds surface as errors;
// there is no "zero availability" fallback.
func (c *Client) FetchAvailability(start, end string) (*AvailabilitySummary, error) {
	began := c.now()
	req, err := http.NewRequest("GET", c.BuildURL(start, end), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.IncrCounter("citas.fetch_failed")
		return nil, fmt.Errorf("fetching booking feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.IncrCounter("citas.fetch_failed")
		return nil, fmt.Errorf("booking feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading booking feed: %w", err)
	}

	summary, err := Aggregate(body, c.now())
	if err != nil {
		logger.IncrCounter("citas.parse_failed")
		return nil, err
	}

	logger.RecordTiming("citas.fetch", time.Since(began))
	logger.Info("availability poll completed", logger.Fields{
		"start":       start,
		"end":         end,
		"days":        summary.TotalAvailableDates,
		"total_slots": summary.TotalAvailableSlots,
	})
	return summary, nil
}

// newCallback mimics the widget's jQuery JSONP callback naming.
func newCallback(millis int64) string {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	token := make([]byte, 9)
	for i := range token {
		token[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return fmt.Sprintf("jQuery%d_%s", millis, token)
}
