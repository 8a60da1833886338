package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/guillerg01/date-checker/internal/dates"
	"github.com/guillerg01/date-checker/internal/logger"
)

const (
	// DefaultSubmitURL is the Web3Forms submission endpoint.
	DefaultSubmitURL = "https://api.web3forms.com/submit"

	defaultFromName  = "Sistema de Monitoreo"
	defaultFromEmail = "noreply@tuapp.com"

	alertSubject = "🚨 ALERTA: Fechas posteriores a la fecha límite encontradas"
	testSubject  = "🧪 PRUEBA: Sistema de Alertas por Email"

	dispatchTimeout = 10 * time.Second
)

// Web3FormsNotifier sends alert emails through the Web3Forms relay.
type Web3FormsNotifier struct {
	accessKey  string
	fromName   string
	fromEmail  string
	recipient  string
	submitURL  string
	httpClient *http.Client
}

// NewWeb3FormsNotifier creates a Web3Forms notifier. The access key and
// recipient are required; sender name and address fall back to the
// monitoring defaults.
func NewWeb3FormsNotifier(accessKey, recipient, fromName, fromEmail string) (*Web3FormsNotifier, error) {
	if accessKey == "" {
		return nil, fmt.Errorf("web3forms access key is required")
	}
	if recipient == "" {
		return nil, fmt.Errorf("alert recipient address is required")
	}
	if fromName == "" {
		fromName = defaultFromName
	}
	if fromEmail == "" {
		fromEmail = defaultFromEmail
	}
	return &Web3FormsNotifier{
		accessKey: accessKey,
		fromName:  fromName,
		fromEmail: fromEmail,
		recipient: recipient,
		submitURL: DefaultSubmitURL,
		httpClient: &http.Client{
			Timeout: dispatchTimeout,
		},
	}, nil
}

// Notify sends one alert email listing every finding.
func (n *Web3FormsNotifier) Notify(findings []dates.Finding, titleTexts []string) error {
	message := formatAlertMessage(findings, titleTexts, time.Now())
	if err := n.submit(alertSubject, message); err != nil {
		logger.IncrCounter("alerts.dispatch_failed")
		return err
	}
	logger.IncrCounter("alerts.dispatched")
	logger.Info("alert email sent", logger.Fields{
		"recipient": n.recipient,
		"findings":  len(findings),
	})
	return nil
}

// SendTest sends the fixed test message used to verify the relay setup.
func (n *Web3FormsNotifier) SendTest() error {
	message := fmt.Sprintf(
		"Hola,\n\nEl sistema de monitoreo de fechas está funcionando correctamente.\n\nHora de la prueba: %s\n\nSaludos,\nSistema de Monitoreo\n",
		formatTimestampES(time.Now()),
	)
	return n.submit(testSubject, message)
}

// submit posts one message to the relay and checks its success flag.
func (n *Web3FormsNotifier) submit(subject, message string) error {
	payload := map[string]string{
		"access_key": n.accessKey,
		"from_name":  n.fromName,
		"from_email": n.fromEmail,
		"subject":    subject,
		"message":    message,
		"to":         n.recipient,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	req, err := http.NewRequest("POST", n.submitURL, bytes.NewBuffer(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	var result struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("parsing relay response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK || !result.Success {
		return fmt.Errorf("relay rejected message (status %d): %s", resp.StatusCode, result.Message)
	}
	return nil
}
