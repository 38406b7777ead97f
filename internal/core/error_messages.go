package core

// # Error Codes Reference
//
// Pipeline failures carry a short code for logs and support reference.
//
//	CFG001   - Source URL not configured (ConfigurationError)
//	FETCH001 - Source returned a non-2xx status
//	FETCH002 - Source body exceeded the size limit
//	FETCH003 - Source could not be reached (DNS, refused, reset, timeout)
//	PARSE001 - Document has no key column (empty header)
//	PARSE002 - Malformed CSV (bad quoting, unterminated field)
//	PARSE003 - Document is not valid UTF-8
//	LIMIT001 - Every fetch slot stayed busy past the wait time
//	ERR000   - Anything else
//
// Codes are chosen by error type, not by message text.

import (
	"errors"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or check the server logs",
	Code:    "ERR000",
}

// MapError returns the UserMessage for err. A nil error maps to the zero value.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var cfgErr *ConfigurationError
	if errors.As(err, &cfgErr) {
		return UserMessage{
			Message: "Source URL is not configured",
			Action:  "Set " + cfgErr.Setting + " and restart",
			Code:    "CFG001",
		}
	}

	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		switch {
		case errors.Is(err, ErrUnexpectedStatus):
			return UserMessage{
				Message: "Source returned an error status",
				Action:  "Check that the spreadsheet is published and the URL is correct",
				Code:    "FETCH001",
			}
		case errors.Is(err, ErrBodyTooLarge):
			return UserMessage{
				Message: "Source document is too large",
				Action:  "Raise SOURCE_MAX_BODY_SIZE or publish a smaller sheet",
				Code:    "FETCH002",
			}
		default:
			return UserMessage{
				Message: "Unable to reach the source",
				Action:  "Check network access to the source host and try again",
				Code:    "FETCH003",
			}
		}
	}

	if errors.Is(err, ErrTooManyFetches) {
		return UserMessage{
			Message: "Server is busy fetching",
			Action:  "Retry shortly or raise SERVER_MAX_CONCURRENT_FETCHES",
			Code:    "LIMIT001",
		}
	}

	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		if errors.Is(err, ErrInvalidEncoding) {
			return UserMessage{
				Message: "Source is not valid UTF-8",
				Action:  "Export the sheet as UTF-8 CSV",
				Code:    "PARSE003",
			}
		}
		if errors.Is(err, ErrNoKeyColumn) {
			return UserMessage{
				Message: "Document has no key column",
				Action:  "Leave the first header cell empty to mark the key column",
				Code:    "PARSE001",
			}
		}
		return UserMessage{
			Message: "Source is not valid CSV",
			Action:  "Check the document for unbalanced quotes",
			Code:    "PARSE002",
		}
	}

	return defaultMessage
}
