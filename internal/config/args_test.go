package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannvm/godenodo/internal/apperr"
)

func TestParseArgs_WrongCount(t *testing.T) {
	cases := [][]string{
		nil,
		{"godenodo"},
		{"godenodo", "term"},
		{"godenodo", "term", "creds", "extra"},
		{"godenodo", "a", "b", "c", "d"},
	}
	for _, argv := range cases {
		_, err := ParseArgs(argv)
		require.Error(t, err, "argv=%v", argv)
		assert.True(t, apperr.Is(err, apperr.Config))
		assert.Contains(t, err.Error(), "Two arguments should be provided")
	}
}

func TestParseArgs_ReturnsArgumentsInOrder(t *testing.T) {
	args, err := ParseArgs([]string{"godenodo", "foo & bar", "/tmp/creds.txt"})
	require.NoError(t, err)
	assert.Equal(t, "foo & bar", args.SearchTerm)
	assert.Equal(t, "/tmp/creds.txt", args.CredentialsPath)
}
