package logging

import (
	"regexp"
	"strings"
)

const masked = "***MASKED***"

// DefaultSensitiveKeys are property names whose values are always masked.
var DefaultSensitiveKeys = []string{
	"password", "passwd", "pass", "pwd",
	"secret", "client_secret",
	"token", "access_token", "auth_token",
}

var bearerPattern = regexp.MustCompile(`(?i)(Bearer|Basic)\s+[A-Za-z0-9\-._~+/]+=*`)

// Masker hides credential values in console and log output.
type Masker struct {
	keys    map[string]struct{}
	enabled bool
}

// NewMasker creates an enabled masker for DefaultSensitiveKeys plus extra.
func NewMasker(extra ...string) *Masker {
	m := &Masker{keys: make(map[string]struct{}), enabled: true}
	for _, k := range DefaultSensitiveKeys {
		m.keys[k] = struct{}{}
	}
	for _, k := range extra {
		m.keys[strings.ToLower(k)] = struct{}{}
	}
	return m
}

// SetEnabled turns masking on or off.
func (m *Masker) SetEnabled(enabled bool) {
	m.enabled = enabled
}

// Enabled reports whether masking is active.
func (m *Masker) Enabled() bool {
	return m != nil && m.enabled
}

// IsSensitive reports whether key names a credential.
func (m *Masker) IsSensitive(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.keys[strings.ToLower(strings.TrimSpace(key))]
	return ok
}

// MaskValue masks value when key is sensitive, and scrubs auth schemes
// from anything else.
func (m *Masker) MaskValue(key, value string) string {
	if !m.Enabled() {
		return value
	}
	if m.IsSensitive(key) {
		return masked
	}
	return bearerPattern.ReplaceAllString(value, "$1 "+masked)
}

// Mask hides value unconditionally when masking is on.
func (m *Masker) Mask(value string) string {
	if !m.Enabled() || value == "" {
		return value
	}
	return masked
}
