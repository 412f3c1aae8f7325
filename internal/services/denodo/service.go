package denodo

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sort"

	"github.com/tuannvm/godenodo/internal/apperr"
	"github.com/tuannvm/godenodo/internal/auth"
	"github.com/tuannvm/godenodo/internal/client"
	"github.com/tuannvm/godenodo/internal/logging"
)

const (
	defaultLoginURL  = auth.DefaultLoginURL
	defaultSearchURL = "https://search.denodo.com/results/ajax/casesCaseComments"
	searchVersion    = "8"

	opLogin  = "login"
	opSearch = "search"
)

// State tracks the login/search exchange.
type State int

const (
	StateInit State = iota
	StateLoginSent
	StateLoginOK
	StateLoginFailed
	StateSearchSent
	StateSearchOK
	StateSearchFailed
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateLoginSent:
		return "login-sent"
	case StateLoginOK:
		return "login-ok"
	case StateLoginFailed:
		return "login-failed"
	case StateSearchSent:
		return "search-sent"
	case StateSearchOK:
		return "search-ok"
	case StateSearchFailed:
		return "search-failed"
	default:
		return "unknown"
	}
}

// Service represents the Denodo support portal. It logs in with a resolved
// form and then runs searches on the same session.
type Service struct {
	session   *client.Client
	loginURL  string
	searchURL string
	console   *logging.Console
	logger    *slog.Logger

	state    State
	loggedIn bool
}

// Option configures a Service.
type Option func(*Service)

// WithLoginURL overrides the login endpoint.
func WithLoginURL(u string) Option {
	return func(s *Service) {
		s.loginURL = u
	}
}

// WithSearchURL overrides the search endpoint (without query string).
func WithSearchURL(u string) Option {
	return func(s *Service) {
		s.searchURL = u
	}
}

// WithConsole sets where progress lines are printed.
func WithConsole(c *logging.Console) Option {
	return func(s *Service) {
		s.console = c
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// NewService creates a new Denodo service on session.
func NewService(session *client.Client, opts ...Option) *Service {
	s := &Service{
		session:   session,
		loginURL:  defaultLoginURL,
		searchURL: defaultSearchURL,
		logger:    logging.Discard(),
		state:     StateInit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current position in the exchange.
func (s *Service) State() State {
	return s.state
}

// Login submits the login form. Cookies set by the portal stay in the
// session for the following searches.
func (s *Service) Login(ctx context.Context, form auth.Form) error {
	s.state = StateLoginSent
	s.loggedIn = false
	s.logger.Debug("sending login request", "url", s.loginURL, "fields", len(form))

	resp, err := s.session.PostForm(ctx, s.loginURL, form.Encode())
	if err != nil {
		s.state = StateLoginFailed
		return apperr.Wrap(apperr.Transport, opLogin, "request failed", err)
	}
	if resp.StatusCode != http.StatusOK {
		s.state = StateLoginFailed
		return apperr.Status(opLogin, resp.StatusCode, string(resp.Body))
	}

	s.state = StateLoginOK
	s.loggedIn = true
	s.report(resp)
	return nil
}

// report prints the cookies and headers of a successful login.
func (s *Service) report(resp *client.Response) {
	s.console.Println("Authenticated successfully")
	s.console.Printf("num cookies: %d", len(resp.Cookies))
	for _, c := range resp.Cookies {
		s.console.Cookie(c.Name, c.Value)
	}

	names := make([]string, 0, len(resp.Header))
	for name := range resp.Header {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s.console.Header(name, resp.Header[name])
	}
}

// Execute logs in and runs a single search. The search is not sent when the
// login fails.
func (s *Service) Execute(ctx context.Context, form auth.Form, term string) (string, error) {
	if err := s.Login(ctx, form); err != nil {
		return "", err
	}
	return s.Search(ctx, term)
}

// FromService reports whether err was produced by Login or Search, as
// opposed to argument, credential or login-page handling.
func FromService(err error) bool {
	var e *apperr.Error
	return errors.As(err, &e) && (e.Op == opLogin || e.Op == opSearch)
}
