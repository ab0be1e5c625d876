// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Normalizer converts locally formatted phone numbers into the international
// dial form messaging providers expect: country code first, digits only, no
// leading "+".
//
// Parsing is delegated to libphonenumber where possible. Input that cannot be
// parsed as a valid number falls back to rule-based cleanup, so normalization
// is always best-effort and never fails.
type Normalizer struct {
	region        string
	defaultPrefix string
	intlPrefixes  []string
}

// Config provides the settings a Normalizer needs.
type Config interface {
	GetPhoneDefaultRegion() string
	GetPhoneDefaultPrefix() string
	GetPhoneIntlPrefixes() []string
}

// NewNormalizer creates a Normalizer for the given region.
//
// intlPrefixes is the allow-list of country dial prefixes that are treated as
// already international and passed through unmodified instead of having the
// default prefix forced onto them.
func NewNormalizer(cfg Config) *Normalizer {
	return &Normalizer{
		region:        cfg.GetPhoneDefaultRegion(),
		defaultPrefix: cfg.GetPhoneDefaultPrefix(),
		intlPrefixes:  cfg.GetPhoneIntlPrefixes(),
	}
}

// Normalize converts raw into international dial form.
//
// Rules, in order: separators and a leading "+" are stripped; a national
// trunk "0" is replaced with the default country prefix; numbers already
// carrying the default prefix or an allow-listed international prefix are
// kept as-is; anything else gets the default prefix prepended.
func (n *Normalizer) Normalize(raw string) string {
	cleaned := clean(raw)
	if cleaned == "" {
		return cleaned
	}

	if number, err := phonenumbers.Parse(raw, n.region); err == nil && phonenumbers.IsValidNumber(number) {
		return strings.TrimPrefix(phonenumbers.Format(number, phonenumbers.E164), "+")
	}

	if strings.HasPrefix(cleaned, "0") {
		return n.defaultPrefix + cleaned[1:]
	}
	if strings.HasPrefix(cleaned, n.defaultPrefix) {
		return cleaned
	}
	for _, prefix := range n.intlPrefixes {
		if strings.HasPrefix(cleaned, prefix) {
			return cleaned
		}
	}
	return n.defaultPrefix + cleaned
}

// clean strips whitespace, hyphen separators and a leading "+".
func clean(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range strings.TrimPrefix(strings.TrimSpace(raw), "+") {
		switch r {
		case ' ', '\t', '-', '(', ')', '.':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
