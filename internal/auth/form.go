package auth

import (
	"net/url"
	"strings"
)

const (
	// ExecutionField is the name of the hidden login-form token.
	ExecutionField = "execution"

	// CredentialFields is the number of name=value pairs the credentials
	// file must provide: the username, the password and the form event.
	CredentialFields = 3

	// LoginFormFields is the size of a complete login form: the execution
	// token followed by the credential fields.
	LoginFormFields = 1 + CredentialFields
)

// Field is one name/value pair of the login form.
type Field struct {
	Name  string
	Value string
}

// Form is an ordered list of form fields. Unlike url.Values it keeps
// insertion order when encoded.
type Form []Field

// Add appends a field.
func (f *Form) Add(name, value string) {
	*f = append(*f, Field{Name: name, Value: value})
}

// Get returns the value of the first field called name.
func (f Form) Get(name string) (string, bool) {
	for _, field := range f {
		if field.Name == name {
			return field.Value, true
		}
	}
	return "", false
}

// Encode renders the form as an application/x-www-form-urlencoded body in
// field order.
func (f Form) Encode() string {
	var b strings.Builder
	for i, field := range f {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(field.Name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(field.Value))
	}
	return b.String()
}
