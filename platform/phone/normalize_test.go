package phone

import "testing"

type testPhoneConfig struct {
	region string
	prefix string
	intl   []string
}

func (c testPhoneConfig) GetPhoneDefaultRegion() string  { return c.region }
func (c testPhoneConfig) GetPhoneDefaultPrefix() string  { return c.prefix }
func (c testPhoneConfig) GetPhoneIntlPrefixes() []string { return c.intl }

func australianNormalizer() *Normalizer {
	return NewNormalizer(testPhoneConfig{region: "AU", prefix: "61", intl: []string{"61", "39"}})
}

func TestNormalize(t *testing.T) {
	n := australianNormalizer()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trunk zero replaced", "0401818848", "61401818848"},
		{"plus stripped", "+61401818848", "61401818848"},
		{"already international", "61401818848", "61401818848"},
		{"separators stripped", "0401 818-848", "61401818848"},
		{"allow-listed foreign prefix kept", "393495565607", "393495565607"},
		{"foreign number with plus", "+393495565607", "393495565607"},
		{"missing country code gets default", "401818848", "61401818848"},
		{"empty passes through", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	n := australianNormalizer()

	inputs := []string{"0401818848", "+61401818848", "61401818848", "393495565607", "0468 377 964"}
	for _, in := range inputs {
		once := n.Normalize(in)
		if twice := n.Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestNormalizeMalformedInputNeverPanics(t *testing.T) {
	n := australianNormalizer()

	for _, in := range []string{"not a number", "++--", "   ", "0"} {
		_ = n.Normalize(in)
	}
}
