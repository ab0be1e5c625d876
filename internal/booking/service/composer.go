package service

import (
	"strings"
	"text/template"

	"harvey_bookings/internal/booking/transport"
	"harvey_bookings/platform/config"
)

// Message bodies are plain-text templates over the validated booking plus the
// derived formatted date. Content changes happen here and in configuration
// (business name, location, contact), never in dispatch logic.
const ownerTemplateText = `🆕 NEW BOOKING ALERT!

👤 Client: {{.Name}}
📧 Email: {{.Email}}
📱 Phone: {{.Phone}}

💆 Service: {{.Service}}
📅 Date: {{.FormattedDate}}
⏰ Time: {{.Time}}
⏱️ Duration: {{.Duration}} minutes

Please confirm this appointment with the client.`

const clientTemplateText = `✅ Booking Confirmed!

Thank you {{.Name}} for choosing {{.BusinessName}}!

📋 Your booking details:
💆 Service: {{.Service}}
📅 Date: {{.FormattedDate}}
⏰ Time: {{.Time}}
⏱️ Duration: {{.Duration}} minutes

📍 Location: {{.Location}}
📞 Contact: {{.Contact}}

We look forward to seeing you!
If you need to reschedule, please reply to this message. 🙏`

// Composer builds the owner-alert and client-confirmation bodies.
type Composer struct {
	owner        *template.Template
	client       *template.Template
	businessName string
	location     string
	contact      string
}

type messageData struct {
	Name          string
	Email         string
	Phone         string
	Service       string
	FormattedDate string
	Time          string
	Duration      int
	BusinessName  string
	Location      string
	Contact       string
}

// NewComposer creates a Composer with the business details from configuration.
func NewComposer(cfg config.BookingConfig) *Composer {
	return &Composer{
		owner:        template.Must(template.New("owner").Parse(ownerTemplateText)),
		client:       template.Must(template.New("client").Parse(clientTemplateText)),
		businessName: cfg.GetBusinessName(),
		location:     cfg.GetBusinessLocation(),
		contact:      cfg.GetBusinessContact(),
	}
}

// ComposeOwnerMessage renders the action-required alert for the business
// owner. The client's phone is shown as submitted so the owner sees the
// number the client typed, not the normalized dial form.
func (c *Composer) ComposeOwnerMessage(booking transport.BookingNotificationRequest, formattedDate string) string {
	return c.render(c.owner, booking, formattedDate)
}

// ComposeClientMessage renders the confirmation for the client.
func (c *Composer) ComposeClientMessage(booking transport.BookingNotificationRequest, formattedDate string) string {
	return c.render(c.client, booking, formattedDate)
}

func (c *Composer) render(tpl *template.Template, booking transport.BookingNotificationRequest, formattedDate string) string {
	data := messageData{
		Name:          booking.Name,
		Email:         booking.Email,
		Phone:         booking.Phone,
		Service:       booking.Service,
		FormattedDate: formattedDate,
		Time:          booking.Time,
		Duration:      booking.Duration,
		BusinessName:  c.businessName,
		Location:      c.location,
		Contact:       c.contact,
	}

	var b strings.Builder
	// Templates are package constants parsed with Must; execution over a
	// plain struct cannot fail.
	_ = tpl.Execute(&b, data)
	return b.String()
}
