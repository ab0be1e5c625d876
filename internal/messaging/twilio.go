package messaging

import (
	"context"
	"strings"

	"harvey_bookings/platform/apperr"
	"harvey_bookings/platform/config"
	"harvey_bookings/platform/logger"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioClient relays messages through a Twilio-hosted WhatsApp channel. The
// Twilio SDK authenticates with account SID and auth token and returns a
// provider-assigned message SID on success.
type TwilioClient struct {
	client *twilio.RestClient
	from   string
	log    *logger.Logger
}

// NewTwilioClient creates a Twilio-mediated gateway from configuration.
func NewTwilioClient(cfg config.TwilioConfig, log *logger.Logger) *TwilioClient {
	var client *twilio.RestClient
	if cfg.GetTwilioAccountSID() != "" && cfg.GetTwilioAuthToken() != "" {
		client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.GetTwilioAccountSID(),
			Password: cfg.GetTwilioAuthToken(),
		})
	}

	return &TwilioClient{
		client: client,
		from:   whatsappAddress(cfg.GetWhatsAppFrom()),
		log:    log,
	}
}

// Provider returns the gateway identifier.
func (c *TwilioClient) Provider() string { return "twilio" }

// Configured reports whether credentials and the sender channel are set.
func (c *TwilioClient) Configured() bool {
	return c.client != nil && c.from != ""
}

// Send delivers a plain text message over the WhatsApp channel. The SDK's
// message create call does not accept a context at this release.
func (c *TwilioClient) Send(_ context.Context, to, body string) (Receipt, error) {
	receipt := Receipt{Provider: c.Provider()}
	if c.client == nil {
		return receipt, apperr.Configuration("twilio credentials missing")
	}

	params := &twilioapi.CreateMessageParams{}
	params.SetFrom(c.from)
	params.SetTo(whatsappAddress("+" + to))
	params.SetBody(body)

	msg, err := c.client.Api.CreateMessage(params)
	if err != nil {
		return receipt, apperr.Wrap(apperr.KindSendFailure, "twilio message create failed", err)
	}

	if msg.Sid != nil {
		receipt.MessageID = *msg.Sid
	}

	c.log.NotificationSent(to, c.Provider(), receipt.MessageID)
	return receipt, nil
}

// whatsappAddress prefixes an address with the whatsapp: scheme Twilio
// expects, leaving already-prefixed values alone.
func whatsappAddress(addr string) string {
	if addr == "" || strings.HasPrefix(addr, "whatsapp:") {
		return addr
	}
	return "whatsapp:" + addr
}

var _ Gateway = (*TwilioClient)(nil)
