package auth

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"github.com/tuannvm/godenodo/internal/apperr"
	"github.com/tuannvm/godenodo/internal/client"
	"github.com/tuannvm/godenodo/internal/logging"
)

// DefaultLoginURL is the Denodo CAS login page.
const DefaultLoginURL = "https://auth.denodo.com/login"

const opLoginPage = "fetch login page"

// Resolver assembles the login form: the execution token scraped from the
// login page followed by the fields of the credentials file.
type Resolver struct {
	session  *client.Client
	loginURL string
	console  *logging.Console
	logger   *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLoginURL points the resolver at another login page.
func WithLoginURL(u string) ResolverOption {
	return func(r *Resolver) {
		r.loginURL = u
	}
}

// WithConsole sets where progress lines are printed.
func WithConsole(c *logging.Console) ResolverOption {
	return func(r *Resolver) {
		r.console = c
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = l
	}
}

// NewResolver creates a resolver that fetches the login page through session.
// The same session must be used for the login itself so the cookies bound to
// the execution token are sent back.
func NewResolver(session *client.Client, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		session:  session,
		loginURL: DefaultLoginURL,
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// LoginURL returns the login page the resolver reads from.
func (r *Resolver) LoginURL() string {
	return r.loginURL
}

// FetchExecutionToken loads the login page and extracts its execution token.
func (r *Resolver) FetchExecutionToken(ctx context.Context) (string, error) {
	r.logger.Debug("fetching login page", "url", r.loginURL)
	resp, err := r.session.Get(ctx, r.loginURL)
	if err != nil {
		return "", apperr.Wrap(apperr.Transport, opLoginPage, "request failed", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", apperr.Status(opLoginPage, resp.StatusCode, "")
	}
	r.console.Println("Retrieved auth page")

	if !utf8.Valid(resp.Body) {
		return "", apperr.New(apperr.Decode, opLoginPage, "response body is not valid text")
	}
	token, ok := ExtractExecutionToken(string(resp.Body))
	if !ok {
		return "", apperr.New(apperr.Token, opLoginPage, "execution token not found")
	}
	r.logger.Debug("obtained execution token", "length", len(token))
	return token, nil
}

// Resolve returns the complete login form for the credentials file at path.
func (r *Resolver) Resolve(ctx context.Context, path string) (Form, error) {
	token, err := r.FetchExecutionToken(ctx)
	if err != nil {
		return nil, err
	}

	creds, err := ReadCredentials(path)
	if err != nil {
		return nil, err
	}
	return r.assemble(token, creds)
}

func (r *Resolver) assemble(token string, creds Form) (Form, error) {
	form := make(Form, 0, LoginFormFields)
	form.Add(ExecutionField, token)
	for _, field := range creds {
		form.Add(field.Name, field.Value)
		r.console.Property(field.Name, field.Value)
	}
	if len(form) != LoginFormFields {
		return nil, apperr.New(apperr.Config, opCredentials, "username and password not present")
	}
	return form, nil
}
