package checker

// CheckResult is the full bundle returned by a page check. On failure only
// Success, Error and Timestamp are populated.
type CheckResult struct {
	Success    bool        `json:"success"`
	Check      *CheckInfo  `json:"check,omitempty"`
	Confidence *Confidence `json:"confidence,omitempty"`
	Result     *Verdict    `json:"result,omitempty"`
	Error      string      `json:"error,omitempty"`
	Timestamp  string      `json:"timestamp,omitempty"`
}

// CheckInfo carries the page evidence backing a check result.
type CheckInfo struct {
	URL             string   `json:"url"`
	Status          int      `json:"status"`
	ContentLength   int      `json:"contentLength"`
	TitleTexts      []string `json:"titleTexts"`
	FoundFutureDate bool     `json:"foundFutureDate"`
	FutureDates     []string `json:"futureDates"`
	LimitDate       string   `json:"limitDate"`
	PageTitle       string   `json:"pageTitle"`
	PageH1          string   `json:"pageH1"`
	Timestamp       string   `json:"timestamp"`
}

// Confidence is the heuristic trust in a negative result: 100 when findings
// exist, 10 when headings were collected but none held a future date, 0
// when no headings were found at all.
type Confidence struct {
	Percentage int    `json:"percentage"`
	Level      string `json:"level"`
	Reason     string `json:"reason"`
}

// Verdict is the one-line outcome shown to the user.
type Verdict struct {
	FoundFutureDate bool   `json:"foundFutureDate"`
	Message         string `json:"message"`
}

// AlertResult is the bundle returned by the alerting variant of the check.
// EmailSent is nil when no dispatch was attempted.
type AlertResult struct {
	Success     bool     `json:"success"`
	Alert       bool     `json:"alert"`
	Message     string   `json:"message"`
	FutureDates []string `json:"futureDates,omitempty"`
	TitleTexts  []string `json:"titleTexts,omitempty"`
	EmailSent   *bool    `json:"emailSent,omitempty"`
	Error       string   `json:"error,omitempty"`
	Timestamp   string   `json:"timestamp"`
}

func levelFor(pct int) string {
	switch {
	case pct >= 80:
		return "Alta"
	case pct >= 50:
		return "Media"
	default:
		return "Baja"
	}
}

// scoreConfidence derives the confidence block from whether any finding
// exists and how many headings were collected.
func scoreConfidence(found bool, titleCount int, limitDate string) *Confidence {
	switch {
	case found:
		return &Confidence{
			Percentage: 100,
			Level:      levelFor(100),
			Reason:     "Se encontraron fechas posteriores al " + limitDate,
		}
	case titleCount > 0:
		return &Confidence{
			Percentage: 10,
			Level:      levelFor(10),
			Reason:     "Se encontraron títulos pero no fechas futuras",
		}
	default:
		return &Confidence{
			Percentage: 0,
			Level:      levelFor(0),
			Reason:     "No se encontraron títulos",
		}
	}
}
