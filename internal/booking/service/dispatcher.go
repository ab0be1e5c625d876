// Package service implements booking notification dispatch: validation,
// message composition and the one-or-two gateway sends per booking.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"harvey_bookings/internal/booking/transport"
	"harvey_bookings/internal/email"
	"harvey_bookings/internal/messaging"
	"harvey_bookings/platform/apperr"
	"harvey_bookings/platform/config"
	"harvey_bookings/platform/dates"
	"harvey_bookings/platform/logger"
	"harvey_bookings/platform/phone"
	"harvey_bookings/platform/validator"

	playgroundvalidator "github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
)

// Recipient identifies who a notification targets.
type Recipient string

const (
	RecipientOwner  Recipient = "owner"
	RecipientClient Recipient = "client"
)

// Channel identifies the transport a notification travelled over.
const (
	ChannelWhatsApp = "whatsapp"
	ChannelEmail    = "email"
)

// SendOutcome is the per-recipient result of one send attempt.
type SendOutcome struct {
	Recipient        Recipient
	Channel          string
	Success          bool
	ProviderResponse string
	ErrorDetail      string
}

// DispatchResult aggregates all send outcomes for a booking. It never
// mutates after construction.
type DispatchResult struct {
	OverallSuccess bool
	Message        string
	Outcomes       []SendOutcome
}

// notification is one composed, addressed message awaiting delivery.
type notification struct {
	recipient Recipient
	channel   string
	address   string
	subject   string
	body      string
}

// Service dispatches booking notifications. All collaborators are injected
// at construction so tests can run with fake gateways and credentials.
type Service struct {
	gateway    messaging.Gateway
	mail       email.Sender
	normalizer *phone.Normalizer
	composer   *Composer
	val        *validator.Validator
	cfg        config.BookingConfig
	log        *logger.Logger
}

// New creates the dispatch service. mail may be nil unless the owner channel
// is email.
func New(gateway messaging.Gateway, mail email.Sender, normalizer *phone.Normalizer, val *validator.Validator, cfg config.BookingConfig, log *logger.Logger) *Service {
	return &Service{
		gateway:    gateway,
		mail:       mail,
		normalizer: normalizer,
		composer:   NewComposer(cfg),
		val:        val,
		cfg:        cfg,
		log:        log,
	}
}

// Dispatch validates the booking, composes the owner and client messages and
// sends them through the configured channels.
//
// Validation and configuration failures return a typed error before any send
// is attempted. Send failures do not error: they are captured per recipient
// in the result, so a partial failure still reports the outcome of the other
// recipient.
func (s *Service) Dispatch(ctx context.Context, req transport.BookingNotificationRequest) (DispatchResult, error) {
	if err := s.validate(req); err != nil {
		return DispatchResult{}, err
	}
	if err := s.checkConfigured(); err != nil {
		return DispatchResult{}, err
	}

	notifications := s.compose(req)

	outcomes := make([]SendOutcome, len(notifications))
	var g errgroup.Group
	for i, n := range notifications {
		g.Go(func() error {
			outcomes[i] = s.send(ctx, n)
			return nil
		})
	}
	// Join both sends before aggregating; send errors live in the outcomes.
	_ = g.Wait()

	overall := true
	for _, outcome := range outcomes {
		overall = overall && outcome.Success
	}

	return DispatchResult{
		OverallSuccess: overall,
		Message:        resultMessage(overall, outcomes),
		Outcomes:       outcomes,
	}, nil
}

func (s *Service) validate(req transport.BookingNotificationRequest) error {
	err := s.val.Struct(req)
	if err == nil {
		return nil
	}

	var verrs playgroundvalidator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, strings.ToLower(fe.Field()))
		}
		return apperr.Validation("missing required fields").WithDetails(fields)
	}
	return apperr.Validation(err.Error())
}

func (s *Service) checkConfigured() error {
	if s.gateway == nil || !s.gateway.Configured() {
		return apperr.Configuration("messaging provider not configured").WithOp("booking.Dispatch")
	}
	if s.cfg.GetOwnerChannel() == config.OwnerChannelEmail && s.mail == nil {
		return apperr.Configuration("owner email channel not configured").WithOp("booking.Dispatch")
	}
	return nil
}

// compose produces the addressed notifications for this booking: the owner
// alert (channel permitting) followed by the client confirmation. Outcomes
// are reported in this order regardless of send completion order.
func (s *Service) compose(req transport.BookingNotificationRequest) []notification {
	formattedDate := dates.Format(req.Date, s.cfg.GetDateLocale())

	notifications := make([]notification, 0, 2)

	switch s.cfg.GetOwnerChannel() {
	case config.OwnerChannelWhatsApp:
		notifications = append(notifications, notification{
			recipient: RecipientOwner,
			channel:   ChannelWhatsApp,
			address:   s.normalizer.Normalize(s.cfg.GetOwnerPhone()),
			body:      s.composer.ComposeOwnerMessage(req, formattedDate),
		})
	case config.OwnerChannelEmail:
		notifications = append(notifications, notification{
			recipient: RecipientOwner,
			channel:   ChannelEmail,
			address:   s.cfg.GetOwnerEmail(),
			subject:   fmt.Sprintf("New booking from %s", req.Name),
			body:      s.composer.ComposeOwnerMessage(req, formattedDate),
		})
	}

	notifications = append(notifications, notification{
		recipient: RecipientClient,
		channel:   ChannelWhatsApp,
		address:   s.normalizer.Normalize(req.Phone),
		body:      s.composer.ComposeClientMessage(req, formattedDate),
	})

	return notifications
}

// send performs one attempt over the notification's channel and converts the
// result into a SendOutcome. No retries.
func (s *Service) send(ctx context.Context, n notification) SendOutcome {
	outcome := SendOutcome{Recipient: n.recipient, Channel: n.channel}

	switch n.channel {
	case ChannelEmail:
		if err := s.mail.SendAlert(ctx, n.address, n.subject, n.body); err != nil {
			s.log.NotificationFailed(n.address, ChannelEmail, err)
			outcome.ErrorDetail = err.Error()
			return outcome
		}
		outcome.Success = true
		return outcome
	default:
		receipt, err := s.gateway.Send(ctx, n.address, n.body)
		if err != nil {
			s.log.NotificationFailed(n.address, s.gateway.Provider(), err)
			outcome.ErrorDetail = err.Error()
			return outcome
		}
		outcome.Success = true
		outcome.ProviderResponse = receipt.MessageID
		return outcome
	}
}

func resultMessage(overall bool, outcomes []SendOutcome) string {
	if !overall {
		return "Booking received but some notifications failed to send."
	}
	if len(outcomes) == 1 {
		return "Booking confirmation sent successfully!"
	}
	return "Booking notifications sent successfully to both owner and client!"
}
