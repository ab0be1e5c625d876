package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"harvey_bookings/internal/booking/service"
	"harvey_bookings/internal/booking/transport"
	"harvey_bookings/platform/apperr"
	"harvey_bookings/platform/httpkit"
)

// Handler handles HTTP requests for booking notifications.
type Handler struct {
	svc *service.Service
}

const msgInvalidRequest = "invalid request body"

// New creates a new booking notification handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Notify receives a booking payload and dispatches the owner and client
// notifications.
// POST /api/v1/bookings/notify
//
// 200 when every attempted send succeeded, 400 on validation failure, 500 on
// configuration failure or when any send failed. Partial failures carry
// per-recipient outcomes so the caller can tell a lost booking from a
// degraded notification.
func (h *Handler) Notify(c *gin.Context) {
	var req transport.BookingNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest(msgInvalidRequest))
		return
	}

	result, err := h.svc.Dispatch(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	status := http.StatusOK
	if !result.OverallSuccess {
		status = http.StatusInternalServerError
	}
	httpkit.JSON(c, status, toResponse(result))
}

func toResponse(result service.DispatchResult) transport.DispatchResponse {
	outcomes := make([]transport.SendOutcomeResponse, 0, len(result.Outcomes))
	for _, outcome := range result.Outcomes {
		outcomes = append(outcomes, transport.SendOutcomeResponse{
			Recipient:        string(outcome.Recipient),
			Channel:          outcome.Channel,
			Success:          outcome.Success,
			ProviderResponse: outcome.ProviderResponse,
			Error:            outcome.ErrorDetail,
		})
	}

	return transport.DispatchResponse{
		Success:  result.OverallSuccess,
		Message:  result.Message,
		Outcomes: outcomes,
	}
}
