package calendar

import (
	"time"
)

// ItemBuilder normalizes one parsed feed entry into an Event: timestamps,
// derived date strings, the multi-day flag, and sanitized text fields.
type ItemBuilder struct {
	opts      Options
	sanitizer *Sanitizer
	loc       *time.Location
}

func NewItemBuilder(opts Options) *ItemBuilder {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	return &ItemBuilder{
		opts:      opts,
		sanitizer: NewSanitizer(opts),
		loc:       loc,
	}
}

func (b *ItemBuilder) Run(entry RawEntry) Event {
	from := b.parseFeedTime(entry.WhenStart)
	to := b.parseFeedTime(entry.WhenEnd)

	fromTime := time.Unix(from, 0).In(b.loc)
	toTime := time.Unix(to, 0).In(b.loc)

	// An event ending exactly at midnight would otherwise count as spanning
	// an extra day. When the span crosses a day boundary and the end time is
	// before one minute past midnight, pull the end back one second before
	// deriving the formatted date and the multi-day flag.
	if to > 0 && toTime.Day() != fromTime.Day() && toTime.Hour() == 0 && toTime.Minute() == 0 {
		to--
		toTime = time.Unix(to, 0).In(b.loc)
	}

	event := Event{
		ExternalID:  entry.ID,
		Title:       b.sanitizer.Plain(entry.Title),
		Description: b.sanitizer.Rich(entry.Content),
		Location:    b.sanitizer.Plain(entry.WhereValue),
		Author:      entry.Author,
		From:        from,
		To:          to,
		Created:     b.parseFeedTime(entry.Published),
		Modified:    b.parseFeedTime(entry.Updated),
		MultiDay:    to > 0 && toTime.Day() != fromTime.Day(),
	}

	if from > 0 {
		event.FormattedFrom = fromTime.Format(b.opts.DateFormat)
	}
	if to > 0 {
		event.FormattedTo = toTime.Format(b.opts.DateFormat)
	}

	return event
}

// parseFeedTime parses a provider timestamp. Timed events carry RFC 3339
// date-times, all-day events carry bare dates. Returns 0 when the value is
// absent or unreadable.
func (b *ItemBuilder) parseFeedTime(value string) int64 {
	if value == "" {
		return 0
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.Unix()
	}
	if t, err := time.ParseInLocation("2006-01-02", value, b.loc); err == nil {
		return t.Unix()
	}

	return 0
}
