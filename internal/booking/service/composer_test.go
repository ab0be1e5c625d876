package service

import (
	"strings"
	"testing"
)

func TestComposeOwnerMessage(t *testing.T) {
	composer := NewComposer(testBookingConfig{})

	body := composer.ComposeOwnerMessage(validBooking(), "Saturday, 14 March 2026")

	for _, want := range []string{
		"NEW BOOKING ALERT",
		"Client: Alex",
		"Email: alex@example.com",
		"Phone: " + testClientPhone,
		"Service: Traditional Thai Massage",
		"Date: Saturday, 14 March 2026",
		"Time: 14:30",
		"Duration: 60 minutes",
		"Please confirm this appointment",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("owner message missing %q:\n%s", want, body)
		}
	}
}

func TestComposeClientMessage(t *testing.T) {
	composer := NewComposer(testBookingConfig{})

	body := composer.ComposeClientMessage(validBooking(), "Saturday, 14 March 2026")

	for _, want := range []string{
		"Booking Confirmed",
		"Thank you Alex for choosing Thai Massage on Harvey!",
		"Service: Traditional Thai Massage",
		"Date: Saturday, 14 March 2026",
		"Duration: 60 minutes",
		"Location: 4 Harvey Cct, Mawson Lakes, SA 5095",
		"Contact: 0401 818 848",
		"If you need to reschedule",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("client message missing %q:\n%s", want, body)
		}
	}
}
