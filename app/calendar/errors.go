package calendar

import (
	"fmt"
	"strings"
)

// ConfigError indicates an invalid query or calendar configuration, such as
// a missing calendar id or a malformed selector string.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return e.Msg
}

// FetchError indicates the upstream feed could not be retrieved. The
// offending URL is recorded for the error message.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch calendar feed %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ParseError indicates the fetched document was structurally invalid. All
// decoder diagnostics are carried, not just the first one.
type ParseError struct {
	Diagnostics []string
}

func (e *ParseError) Error() string {
	return "failed to parse calendar feed: " + strings.Join(e.Diagnostics, "; ")
}
