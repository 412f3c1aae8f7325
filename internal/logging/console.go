package logging

import (
	"fmt"
	"io"
)

// Console prints the human-readable progress lines of a run. Property and
// cookie values pass through the Masker, which is a no-op unless redaction
// is enabled.
type Console struct {
	out    io.Writer
	masker *Masker
}

// NewConsole creates a console writing to out. A nil masker prints values
// verbatim.
func NewConsole(out io.Writer, masker *Masker) *Console {
	if out == nil {
		out = io.Discard
	}
	return &Console{out: out, masker: masker}
}

// Println writes a plain line.
func (c *Console) Println(msg string) {
	if c == nil {
		return
	}
	fmt.Fprintln(c.out, msg)
}

// Printf writes a formatted line.
func (c *Console) Printf(format string, args ...any) {
	if c == nil {
		return
	}
	fmt.Fprintf(c.out, format+"\n", args...)
}

// Property prints a credential property parsed from the credentials file.
func (c *Console) Property(name, value string) {
	if c == nil {
		return
	}
	c.Printf("property name: %s property value: %s", name, c.masker.MaskValue(name, value))
}

// Cookie prints a cookie received from the server.
func (c *Console) Cookie(name, value string) {
	if c == nil {
		return
	}
	c.Printf("Cookie name: %s, cookie value: %s", name, c.masker.Mask(value))
}

// Header prints a response header.
func (c *Console) Header(name string, values []string) {
	if c == nil {
		return
	}
	shown := make([]string, len(values))
	for i, v := range values {
		if name == "Set-Cookie" {
			shown[i] = c.masker.Mask(v)
			continue
		}
		shown[i] = c.masker.MaskValue(name, v)
	}
	c.Printf("Authentication header %s, value: %q", name, shown)
}
