// Package messaging abstracts sending one message to one recipient over a
// third-party WhatsApp transport. Two gateway variants exist: a direct
// WhatsApp Business Cloud API client and a Twilio-mediated client. Both are
// selected once at startup and expose the same contract to callers.
package messaging

import "context"

// Receipt is the provider acknowledgement for an accepted message.
type Receipt struct {
	// Provider names the gateway that handled the send.
	Provider string
	// MessageID is the provider-assigned message identifier, when available.
	MessageID string
}

// Gateway sends a single message to a single recipient. One attempt, one
// outcome: implementations never retry, and a non-2xx provider response or a
// transport failure is returned as an error.
type Gateway interface {
	// Provider returns the gateway identifier for logging and outcomes.
	Provider() string
	// Configured reports whether the gateway has the credentials it needs.
	// Unconfigured gateways must be detected before any send is attempted.
	Configured() bool
	// Send delivers body to the given international phone number (digits
	// only, no leading "+") and blocks until the provider responds.
	Send(ctx context.Context, to, body string) (Receipt, error)
}
