package auth

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/tuannvm/godenodo/internal/apperr"
)

const opCredentials = "read credentials"

// ReadCredentials reads name=value pairs from the UTF-8 text file at path.
func ReadCredentials(path string) (Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.Wrap(apperr.IO, opCredentials, "could not open password file", err)
	}
	if !utf8.Valid(data) {
		return nil, apperr.Wrap(apperr.IO, opCredentials, "could not open password file", errors.New("file is not valid UTF-8"))
	}
	return ParseCredentials(bytes.NewReader(data))
}

// ParseCredentials splits every line on its first '='. Lines without one,
// including blank lines, are skipped.
func ParseCredentials(r io.Reader) (Form, error) {
	var form Form
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		name, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		form.Add(name, value)
	}
	if err := scanner.Err(); err != nil {
		return nil, apperr.Wrap(apperr.IO, opCredentials, "could not open password file", err)
	}
	return form, nil
}
