package config

import "github.com/tuannvm/godenodo/internal/apperr"

// usage is the message returned when the argument count is wrong.
const usage = "Two arguments should be provided: 'search term' 'credentials file'"

// Args holds the two positional arguments of a run.
type Args struct {
	SearchTerm      string
	CredentialsPath string
}

// ParseArgs validates an argv-style slice (program name first) and returns
// the search term and credentials file path.
func ParseArgs(argv []string) (Args, error) {
	if len(argv) != 3 {
		return Args{}, apperr.New(apperr.Config, "", usage)
	}
	return Args{SearchTerm: argv[1], CredentialsPath: argv[2]}, nil
}
