package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

// EmailService sends transactional email through the mail provider's HTTP API.
// Sending is best effort and always asynchronous; the pipeline never waits
// on or fails because of email delivery.
type EmailService struct {
	apiURL string
	apiKey string
	from   string
	client *http.Client
}

// NewEmailService creates a new email service from environment config.
// With no MAIL_API_URL configured the service runs in disabled mode and
// only logs what it would have sent.
func NewEmailService() *EmailService {
	return &EmailService{
		apiURL: os.Getenv("MAIL_API_URL"),
		apiKey: os.Getenv("MAIL_API_KEY"),
		from:   os.Getenv("MAIL_FROM"),
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type emailPayload struct {
	From     string                 `json:"from"`
	To       string                 `json:"to"`
	Subject  string                 `json:"subject"`
	Template string                 `json:"template"`
	Context  map[string]interface{} `json:"context,omitempty"`
}

// SendAsync queues an email for delivery on a background goroutine
func (s *EmailService) SendAsync(to, subject, template string, emailContext map[string]interface{}) {
	go func() {
		if err := s.send(to, subject, template, emailContext); err != nil {
			log.Printf("⚠️ Failed to send email %q to %s: %v", subject, to, err)
		}
	}()
}

func (s *EmailService) send(to, subject, template string, emailContext map[string]interface{}) error {
	if s.apiURL == "" {
		log.Printf("📧 Email disabled, skipping %q to %s", subject, to)
		return nil
	}

	body, err := json.Marshal(emailPayload{
		From:     s.from,
		To:       to,
		Subject:  subject,
		Template: template,
		Context:  emailContext,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("mail API returned status %d", resp.StatusCode)
	}
	return nil
}
