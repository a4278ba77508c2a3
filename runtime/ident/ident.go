// Package ident generates and parses structured identifiers. Every
// identifier shares one scheme: a prefix, a fixed-width UTC timestamp, an
// entropy payload (eight characters unless the Spec pins a total length),
// and an optional checksum digit, joined by
// dashes. Parsing is the exact inverse of generation: a well-formed
// identifier round-trips to its prefix and components, malformed input
// yields nil, never a partial result.
package ident

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// stampLayout is the fixed-width timestamp segment.
	stampLayout = "20060102150405"
	// payloadLen is the default width of the entropy segment.
	payloadLen = 8
)

// Spec describes one identifier family.
type Spec struct {
	Prefix string
	// TotalLength, when positive, fixes the full identifier length; the
	// payload widens or narrows to fit.
	TotalLength int
	Checksum    bool
}

// Components is the parsed form of an identifier.
type Components struct {
	Prefix  string
	Stamp   time.Time
	Payload string
	// Check is the verified checksum digit, or -1 when absent.
	Check int
	// Category aliases Prefix: SKU identifiers carry their product
	// category as the prefix segment.
	Category string
}

// Option configures a Factory.
type Option func(*Factory)

// WithClock sets the time source. Used by tests for deterministic output.
func WithClock(now func() time.Time) Option {
	return func(f *Factory) { f.now = now }
}

// WithEntropy sets the payload entropy source.
func WithEntropy(fn func() uuid.UUID) Option {
	return func(f *Factory) { f.entropy = fn }
}

// WithSpec sets the factory's default identifier family.
func WithSpec(s Spec) Option {
	return func(f *Factory) { f.spec = s }
}

// Factory generates identifiers. The zero value is not usable; call
// NewFactory.
type Factory struct {
	now     func() time.Time
	entropy func() uuid.UUID
	spec    Spec
}

// NewFactory returns a Factory with wall-clock time and random entropy.
func NewFactory(opts ...Option) *Factory {
	f := &Factory{now: time.Now, entropy: uuid.New}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Generate builds an identifier with the given prefix, applying the
// factory's checksum setting.
func (f *Factory) Generate(prefix string) string {
	return f.build(prefix, f.spec.Checksum)
}

// GenerateID builds an identifier with the factory's configured prefix.
func (f *Factory) GenerateID() string {
	prefix := f.spec.Prefix
	if prefix == "" {
		prefix = "ID"
	}
	return f.build(prefix, f.spec.Checksum)
}

// Fixed-prefix convenience wrappers over the shared scheme.

// OrderNumber returns a PED-prefixed identifier.
func (f *Factory) OrderNumber() string { return f.Generate("PED") }

// InvoiceNumber returns an NF-prefixed identifier.
func (f *Factory) InvoiceNumber() string { return f.Generate("NF") }

// TrackingCode returns a BR-prefixed identifier.
func (f *Factory) TrackingCode() string { return f.Generate("BR") }

// CustomerCode returns a CLI-prefixed identifier.
func (f *Factory) CustomerCode() string { return f.Generate("CLI") }

// TransactionID returns a TXN-prefixed identifier.
func (f *Factory) TransactionID() string { return f.Generate("TXN") }

// shortCodeCharset omits the lookalike characters l, o, 0, and 1.
const shortCodeCharset = "abcdefghijkmnpqrstuvwxyz23456789"

// ShortCode returns a URL-friendly code of the requested length, drawn from
// a 32-character alphabet without lookalikes. Short codes stand alone: they
// do not follow the dash-joined scheme and Parse does not accept them.
func (f *Factory) ShortCode(length int) string {
	if length <= 0 {
		return ""
	}
	code := make([]byte, 0, length)
	for len(code) < length {
		u := f.entropy()
		for _, b := range u {
			if len(code) == length {
				break
			}
			code = append(code, shortCodeCharset[int(b)%len(shortCodeCharset)])
		}
	}
	return string(code)
}

// SKU builds a product identifier carrying the category as its prefix, so
// parsing recovers the category. Characters the scheme cannot round-trip
// (anything outside letters and digits) are dropped.
func (f *Factory) SKU(category string) string {
	return f.build(category, f.spec.Checksum)
}

func (f *Factory) build(prefix string, checksum bool) string {
	prefix = sanitizePrefix(prefix)
	id := prefix + "-" + f.now().UTC().Format(stampLayout) + "-" + f.payload(prefix, checksum)
	if checksum {
		id += "-" + string(rune('0'+checkDigit(id)))
	}
	return id
}

// sanitizePrefix drops every byte the scheme cannot round-trip: segments
// join on dashes, so a dash inside the prefix would defeat Parse.
func sanitizePrefix(prefix string) string {
	var b strings.Builder
	for i := 0; i < len(prefix); i++ {
		c := prefix[i]
		if (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') {
			b.WriteByte(c)
		}
	}
	if b.Len() == 0 {
		return "ID"
	}
	return b.String()
}

// payload derives the entropy segment from a UUID. The width defaults to
// eight characters; a Spec with TotalLength set stretches or narrows it so
// the whole identifier lands on the requested length.
func (f *Factory) payload(prefix string, checksum bool) string {
	width := payloadLen
	if f.spec.TotalLength > 0 {
		width = f.spec.TotalLength - len(prefix) - len(stampLayout) - 2
		if checksum {
			width -= 2
		}
		if width < 1 {
			width = 1
		}
		if width > 32 {
			width = 32
		}
	}
	u := f.entropy()
	return strings.ToUpper(strings.ReplaceAll(u.String(), "-", "")[:width])
}

// Parse inverts Generate. It returns nil for anything this package could
// not have produced: wrong segment count, bad timestamp, bad payload, or a
// checksum mismatch.
func Parse(id string) *Components {
	parts := strings.Split(id, "-")
	if len(parts) != 3 && len(parts) != 4 {
		return nil
	}
	prefix, stamp, payload := parts[0], parts[1], parts[2]
	if prefix == "" || len(payload) == 0 || !alnum(payload) {
		return nil
	}
	ts, err := time.Parse(stampLayout, stamp)
	if err != nil {
		return nil
	}
	c := &Components{Prefix: prefix, Stamp: ts, Payload: payload, Check: -1, Category: prefix}
	if len(parts) == 4 {
		check := parts[3]
		if len(check) != 1 || check[0] < '0' || check[0] > '9' {
			return nil
		}
		if int(check[0]-'0') != checkDigit(prefix+"-"+stamp+"-"+payload) {
			return nil
		}
		c.Check = int(check[0] - '0')
	}
	return c
}

// Valid reports whether the identifier parses and carries the expected
// prefix.
func Valid(id, expectedPrefix string) bool {
	c := Parse(id)
	return c != nil && c.Prefix == expectedPrefix
}

// checkDigit computes a mod-10 digit over the identifier body with EAN-style
// alternating 1/3 weights on byte values.
func checkDigit(body string) int {
	sum := 0
	for i := 0; i < len(body); i++ {
		w := 1
		if i%2 == 1 {
			w = 3
		}
		sum += int(body[i]) * w
	}
	return (10 - sum%10) % 10
}

func alnum(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			return false
		}
	}
	return true
}
