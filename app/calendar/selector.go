package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseSelector applies a "field=value, field=value" selector string to the
// query and options. Recognized fields are from, to, id, keywords, limit,
// sort and html. Only the equality operator is accepted; anything else is a
// configuration error.
func ParseSelector(selector string, q *Query, o *Options) error {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return nil
	}

	for _, clause := range strings.Split(selector, ",") {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}

		field, value, err := splitClause(clause)
		if err != nil {
			return err
		}

		if err := applyField(field, value, q, o); err != nil {
			return err
		}
	}

	return nil
}

func splitClause(clause string) (string, string, error) {
	idx := strings.Index(clause, "=")
	if idx <= 0 {
		return "", "", &ConfigError{Msg: fmt.Sprintf("invalid selector clause '%s': expected field=value", clause)}
	}

	// Reject comparison operators: only equality is supported.
	switch clause[idx-1] {
	case '!', '<', '>', '~':
		return "", "", &ConfigError{Msg: fmt.Sprintf("invalid operator in selector clause '%s': only '=' is supported", clause)}
	}
	if idx+1 < len(clause) && clause[idx+1] == '=' {
		return "", "", &ConfigError{Msg: fmt.Sprintf("invalid operator in selector clause '%s': only '=' is supported", clause)}
	}

	field := strings.TrimSpace(clause[:idx])
	value := strings.TrimSpace(clause[idx+1:])
	return field, value, nil
}

func applyField(field, value string, q *Query, o *Options) error {
	switch field {
	case "from":
		ts, err := parseSelectorTime(value, o.Location)
		if err != nil {
			return &ConfigError{Msg: fmt.Sprintf("invalid 'from' value '%s': %v", value, err)}
		}
		q.From = ts
	case "to":
		ts, err := parseSelectorTime(value, o.Location)
		if err != nil {
			return &ConfigError{Msg: fmt.Sprintf("invalid 'to' value '%s': %v", value, err)}
		}
		q.To = ts
	case "id":
		q.CalendarID = value
	case "keywords":
		q.Keywords = value
	case "limit":
		limit, err := strconv.Atoi(value)
		if err != nil || limit < 0 {
			return &ConfigError{Msg: fmt.Sprintf("invalid 'limit' value '%s'", value)}
		}
		q.Limit = limit
	case "sort":
		switch SortField(value) {
		case SortDate, SortModified:
			q.Sort = SortField(value)
		default:
			return &ConfigError{Msg: fmt.Sprintf("invalid 'sort' value '%s': expected date or modified", value)}
		}
	case "html":
		html, err := strconv.ParseBool(value)
		if err != nil {
			return &ConfigError{Msg: fmt.Sprintf("invalid 'html' value '%s'", value)}
		}
		o.RenderHTML = html
	default:
		return &ConfigError{Msg: fmt.Sprintf("unknown selector field '%s'", field)}
	}

	return nil
}

// parseSelectorTime accepts an RFC 3339 timestamp, a bare date, or raw unix
// seconds.
func parseSelectorTime(value string, loc *time.Location) (int64, error) {
	if loc == nil {
		loc = time.UTC
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.Unix(), nil
	}
	if t, err := time.ParseInLocation("2006-01-02", value, loc); err == nil {
		return t.Unix(), nil
	}
	if ts, err := strconv.ParseInt(value, 10, 64); err == nil {
		return ts, nil
	}

	return 0, fmt.Errorf("unrecognized time format")
}
