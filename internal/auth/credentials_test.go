package auth

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannvm/godenodo/internal/apperr"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credentials")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseCredentials(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Form
	}{
		{
			name:  "two lines",
			input: "user=alice\npass=secret\n",
			want:  Form{{"user", "alice"}, {"pass", "secret"}},
		},
		{
			name:  "splits on first equals only",
			input: "password=a=b==c\n",
			want:  Form{{"password", "a=b==c"}},
		},
		{
			name:  "skips lines without equals",
			input: "\n# comment\nuser=alice\n\nnoise\npass=secret",
			want:  Form{{"user", "alice"}, {"pass", "secret"}},
		},
		{
			name:  "crlf line endings",
			input: "user=alice\r\npass=secret\r\n",
			want:  Form{{"user", "alice"}, {"pass", "secret"}},
		},
		{
			name:  "empty value and name",
			input: "user=\n=x\n",
			want:  Form{{"user", ""}, {"", "x"}},
		},
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCredentials(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadCredentials(t *testing.T) {
	path := writeFile(t, "username=alice\npassword=secret\n_eventId=submit\n")
	got, err := ReadCredentials(path)
	require.NoError(t, err)
	assert.Equal(t, Form{{"username", "alice"}, {"password", "secret"}, {"_eventId", "submit"}}, got)
}

func TestReadCredentials_Missing(t *testing.T) {
	_, err := ReadCredentials(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.IO))
	assert.Contains(t, err.Error(), "could not open password file")
}

func TestReadCredentials_NotUTF8(t *testing.T) {
	path := writeFile(t, "user=\xff\xfe\n")
	_, err := ReadCredentials(path)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.IO))
}
