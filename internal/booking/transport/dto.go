package transport

// BookingNotificationRequest is the inbound booking payload posted by the
// website booking form.
type BookingNotificationRequest struct {
	Service  string `json:"service" validate:"required"`
	Date     string `json:"date" validate:"required"`
	Time     string `json:"time" validate:"required"`
	Duration int    `json:"duration" validate:"required,min=1"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"required"`
}

// SendOutcomeResponse reports the result of one recipient's notification.
type SendOutcomeResponse struct {
	Recipient        string `json:"recipient"`
	Channel          string `json:"channel"`
	Success          bool   `json:"success"`
	ProviderResponse string `json:"providerResponse,omitempty"`
	Error            string `json:"error,omitempty"`
}

// DispatchResponse is the caller-facing result of a booking notification
// dispatch. Success is true only when every attempted send succeeded.
type DispatchResponse struct {
	Success  bool                  `json:"success"`
	Message  string                `json:"message"`
	Outcomes []SendOutcomeResponse `json:"outcomes"`
}
