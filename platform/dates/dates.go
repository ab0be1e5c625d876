// Package dates provides best-effort date formatting for notification bodies.
// This is part of the platform layer and contains no business logic.
package dates

import (
	"strings"
	"time"
)

// Layouts accepted for inbound booking dates. Website forms submit plain ISO
// dates; some integrations post full RFC 3339 timestamps.
var parseLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// localeLayouts maps a BCP 47-ish locale tag to a long-form date layout
// (full weekday, numeric day, full month, numeric year).
var localeLayouts = map[string]string{
	"en-au": "Monday, 2 January 2006",
	"en-gb": "Monday, 2 January 2006",
	"en-us": "Monday, January 2, 2006",
}

const defaultLayout = "Monday, 2 January 2006"

// Format renders an ISO date as a long-form localized string.
//
// Formatting is best-effort: when isoDate cannot be parsed, the input is
// returned unchanged so a malformed date never blocks notification delivery.
// Unknown locales fall back to the en-AU layout.
func Format(isoDate, locale string) string {
	trimmed := strings.TrimSpace(isoDate)
	if trimmed == "" {
		return isoDate
	}

	var parsed time.Time
	var err error
	for _, layout := range parseLayouts {
		parsed, err = time.Parse(layout, trimmed)
		if err == nil {
			break
		}
	}
	if err != nil {
		return isoDate
	}

	layout, ok := localeLayouts[strings.ToLower(locale)]
	if !ok {
		layout = defaultLayout
	}
	return parsed.Format(layout)
}
