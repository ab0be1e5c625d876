package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"harvey_bookings/platform/apperr"
	"harvey_bookings/platform/config"
	"harvey_bookings/platform/logger"
)

const graphAPIHost = "https://graph.facebook.com"

// CloudClient sends messages through the WhatsApp Business Cloud API,
// addressed by phone-number identifier and authenticated with a bearer token.
type CloudClient struct {
	baseURL       string
	phoneNumberID string
	accessToken   string
	http          *http.Client
	log           *logger.Logger
}

type cloudTextRequest struct {
	MessagingProduct string    `json:"messaging_product"`
	To               string    `json:"to"`
	Type             string    `json:"type"`
	Text             cloudText `json:"text"`
}

type cloudText struct {
	Body string `json:"body"`
}

type cloudTemplateRequest struct {
	MessagingProduct string        `json:"messaging_product"`
	To               string        `json:"to"`
	Type             string        `json:"type"`
	Template         cloudTemplate `json:"template"`
}

type cloudTemplate struct {
	Name     string        `json:"name"`
	Language cloudLanguage `json:"language"`
}

type cloudLanguage struct {
	Code string `json:"code"`
}

type cloudResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

// NewCloudClient creates a Cloud API gateway from configuration. The client
// is always constructed; missing credentials surface through Configured so
// the dispatcher can report a configuration error per request.
func NewCloudClient(cfg config.CloudAPIConfig, log *logger.Logger) *CloudClient {
	return &CloudClient{
		baseURL:       fmt.Sprintf("%s/%s", graphAPIHost, cfg.GetWhatsAppAPIVersion()),
		phoneNumberID: cfg.GetWhatsAppPhoneNumberID(),
		accessToken:   cfg.GetWhatsAppAccessToken(),
		http:          &http.Client{Timeout: 10 * time.Second},
		log:           log,
	}
}

// Provider returns the gateway identifier.
func (c *CloudClient) Provider() string { return "whatsapp_cloud" }

// Configured reports whether the phone-number ID and access token are set.
func (c *CloudClient) Configured() bool {
	return c.phoneNumberID != "" && c.accessToken != ""
}

// Send delivers a plain text message.
func (c *CloudClient) Send(ctx context.Context, to, body string) (Receipt, error) {
	payload := cloudTextRequest{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             cloudText{Body: body},
	}
	return c.post(ctx, to, payload)
}

// SendTemplate delivers a pre-approved message template. Providers require
// templates for business-initiated conversations outside the 24h session
// window.
func (c *CloudClient) SendTemplate(ctx context.Context, to, name, languageCode string) (Receipt, error) {
	payload := cloudTemplateRequest{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "template",
		Template: cloudTemplate{
			Name:     name,
			Language: cloudLanguage{Code: languageCode},
		},
	}
	return c.post(ctx, to, payload)
}

func (c *CloudClient) post(ctx context.Context, to string, payload interface{}) (Receipt, error) {
	receipt := Receipt{Provider: c.Provider()}

	body, err := json.Marshal(payload)
	if err != nil {
		return receipt, fmt.Errorf("marshal whatsapp payload: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.baseURL, c.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return receipt, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return receipt, apperr.Wrap(apperr.KindSendFailure, "whatsapp request failed", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return receipt, apperr.SendFailure(fmt.Sprintf("whatsapp api returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data))))
	}

	var parsed cloudResponse
	if err := json.Unmarshal(data, &parsed); err == nil && len(parsed.Messages) > 0 {
		receipt.MessageID = parsed.Messages[0].ID
	}

	c.log.NotificationSent(to, c.Provider(), receipt.MessageID)
	return receipt, nil
}

var _ Gateway = (*CloudClient)(nil)
