package core

import (
	"errors"
	"fmt"
)

// SourceURLSetting is the name of the setting that holds the source URL.
const SourceURLSetting = "SPREADSHEET_URL"

// Sentinel errors. Match with errors.Is.
var (
	ErrMissingSourceURL = errors.New("source URL not configured")
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrBodyTooLarge     = errors.New("response body too large")
	ErrNoKeyColumn      = errors.New("no key column (empty header) in document")
	ErrInvalidEncoding  = errors.New("invalid UTF-8 in document")
)

// ConfigurationError reports a required setting that is missing or invalid.
// It is returned before any network access is attempted.
type ConfigurationError struct {
	Setting string
	Err     error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s environment variable not set.", e.Setting)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// FetchError reports a failed retrieval of the source document.
type FetchError struct {
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("error fetching spreadsheet data: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ParseError reports CSV content that could not be decoded into rows.
// Line is taken from the underlying csv.ParseError, whose message already
// names the position.
type ParseError struct {
	Line int // 0 when the failure is not tied to a line
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("error parsing spreadsheet data: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
