package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
)

// ResendClient handles email sending via Resend API
type ResendClient struct {
	apiKey string
	from   string
}

// NewResendClient creates a new Resend client
func NewResendClient() *ResendClient {
	apiKey := os.Getenv("RESEND_API_KEY")
	if apiKey == "" {
		log.Printf("[resend] ⚠️  RESEND_API_KEY not set, emails will fail")
	}

	from := os.Getenv("RESEND_FROM_EMAIL")
	if from == "" {
		from = "orders@mail.vastrika.in" // Default from address
	}

	return &ResendClient{
		apiKey: apiKey,
		from:   from,
	}
}

// send posts one email payload to the Resend API.
func (r *ResendClient) send(payload map[string]interface{}) error {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[resend] failed to marshal payload: %v", err)
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequest("POST", "https://api.resend.com/emails", bytes.NewBuffer(jsonPayload))
	if err != nil {
		log.Printf("[resend] failed to create request: %v", err)
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", r.apiKey))
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		log.Printf("[resend] failed to send request: %v", err)
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("[resend] failed to read response: %v", err)
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Printf("[resend] api returned status %d: %s", resp.StatusCode, string(body))
		return fmt.Errorf("resend api error: status %d", resp.StatusCode)
	}

	return nil
}
