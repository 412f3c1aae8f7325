package denodo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	"github.com/tuannvm/godenodo/internal/apperr"
)

// EscapeComponent percent-encodes s for use as a single URL component.
// Spaces become %20; reserved characters such as & = ? # % + are escaped.
func EscapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// SearchURL builds the case-comment search URL for term.
func (s *Service) SearchURL(term string) string {
	return fmt.Sprintf("%s?filter=%s&version=%s", s.searchURL, EscapeComponent(term), searchVersion)
}

// Search queries the case comments for term and returns the raw response
// body. It requires a successful Login on this service.
func (s *Service) Search(ctx context.Context, term string) (string, error) {
	if !s.loggedIn {
		return "", apperr.New(apperr.Config, opSearch, "not logged in")
	}

	endpoint := s.SearchURL(term)
	s.state = StateSearchSent
	s.logger.Debug("sending search request", "url", endpoint)

	resp, err := s.session.Get(ctx, endpoint)
	if err != nil {
		s.state = StateSearchFailed
		return "", apperr.Wrap(apperr.Transport, opSearch, "request to search endpoint failed", err)
	}
	if resp.StatusCode != http.StatusOK {
		s.state = StateSearchFailed
		return "", apperr.Status(opSearch, resp.StatusCode, "")
	}
	if !utf8.Valid(resp.Body) {
		s.state = StateSearchFailed
		return "", apperr.New(apperr.Decode, opSearch, "could not parse text from response")
	}

	s.state = StateSearchOK
	s.console.Println("Searched successfully")

	body := string(resp.Body)
	if gjson.Valid(body) {
		s.logger.Debug("search response", "bytes", len(body), "json", true, "type", gjson.Parse(body).Type.String())
	} else {
		s.logger.Debug("search response", "bytes", len(body), "json", false)
	}
	return body, nil
}
