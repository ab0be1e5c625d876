// Package booking provides the booking notification bounded context.
// It turns an inbound booking payload into owner and client notifications
// delivered through the configured messaging gateway.
package booking

import (
	"harvey_bookings/internal/booking/handler"
	"harvey_bookings/internal/booking/service"
	"harvey_bookings/internal/email"
	apphttp "harvey_bookings/internal/http"
	"harvey_bookings/internal/messaging"
	"harvey_bookings/platform/config"
	"harvey_bookings/platform/logger"
	"harvey_bookings/platform/phone"
	"harvey_bookings/platform/validator"
)

// Module is the booking bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the booking module with all its
// dependencies. mail may be nil when the owner channel is not email.
func NewModule(gateway messaging.Gateway, mail email.Sender, cfg *config.Config, val *validator.Validator, log *logger.Logger) *Module {
	normalizer := phone.NewNormalizer(cfg)
	svc := service.New(gateway, mail, normalizer, val, cfg, log)
	h := handler.New(svc)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "booking"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts booking routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	limited := ctx.RateLimiter.RateLimit()

	ctx.V1.POST("/bookings/notify", limited, m.handler.Notify)

	// Path kept from the original serverless deployment so the website form
	// keeps working without a redeploy.
	ctx.Engine.POST("/.netlify/functions/send-whatsapp", limited, m.handler.Notify)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
