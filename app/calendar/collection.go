package calendar

import (
	"strings"
	"time"
)

// datetimePlaceholder is substituted inside the date wrappers with the
// RFC 3339 representation of the event timestamp.
const datetimePlaceholder = "{datetime}"

// Collection is an ordered container of events in feed order.
type Collection struct {
	events    []Event
	lastError string
}

func NewCollection() *Collection {
	return &Collection{}
}

func (c *Collection) Add(event Event) {
	c.events = append(c.events, event)
}

func (c *Collection) Events() []Event {
	return c.events
}

func (c *Collection) Len() int {
	return len(c.events)
}

// SetLastError records the error text surfaced by Render when the
// collection is empty.
func (c *Collection) SetLastError(msg string) {
	c.lastError = msg
}

func (c *Collection) LastError() string {
	return c.lastError
}

// Render produces the markup for the collection: list wrapper, one fragment
// per event, list close. An empty collection renders the last recorded
// error text instead of empty wrapper markup.
func (c *Collection) Render(m Markup) string {
	if len(c.events) == 0 {
		return c.lastError
	}

	var b strings.Builder
	b.WriteString(m.ListOpen)

	for _, event := range c.events {
		c.renderEvent(&b, m, event)
	}

	b.WriteString(m.ListClose)
	return b.String()
}

func (c *Collection) renderEvent(b *strings.Builder, m Markup, event Event) {
	b.WriteString(m.ItemOpen)

	b.WriteString(m.TitleOpen)
	b.WriteString(event.Title)
	b.WriteString(m.TitleClose)

	if event.From > 0 {
		b.WriteString(substituteDatetime(m.DateFromOpen, event.From))
		b.WriteString(event.FormattedFrom)
		b.WriteString(m.DateFromClose)
	}

	if event.To > 0 {
		b.WriteString(substituteDatetime(m.DateToOpen, event.To))
		b.WriteString(event.FormattedTo)
		b.WriteString(m.DateToClose)
	}

	if event.Location != "" {
		b.WriteString(m.LocationOpen)
		b.WriteString(event.Location)
		b.WriteString(m.LocationClose)
	}

	if event.Description != "" {
		b.WriteString(m.DescriptionOpen)
		b.WriteString(event.Description)
		b.WriteString(m.DescriptionClose)
	}

	b.WriteString(m.ItemClose)
}

func substituteDatetime(wrapper string, ts int64) string {
	return strings.ReplaceAll(wrapper, datetimePlaceholder,
		time.Unix(ts, 0).UTC().Format(time.RFC3339))
}
