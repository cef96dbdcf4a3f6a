package calendar

import (
	"testing"
	"time"
)

func buildTestEvent(t *testing.T, start, end string) Event {
	t.Helper()

	opts := DefaultOptions()
	opts.DateFormat = "2006-01-02 15:04"
	builder := NewItemBuilder(opts)

	return builder.Run(RawEntry{
		ID:        "event-1",
		Title:     "Test",
		WhenStart: start,
		WhenEnd:   end,
	})
}

func TestItemBuilder_SingleDay(t *testing.T) {
	event := buildTestEvent(t, "2011-12-05T09:00:00Z", "2011-12-05T10:00:00Z")

	if event.MultiDay {
		t.Error("Event within one day must not be multi-day")
	}
	if event.FormattedFrom != "2011-12-05 09:00" {
		t.Errorf("Unexpected formatted from: %q", event.FormattedFrom)
	}
	if event.FormattedTo != "2011-12-05 10:00" {
		t.Errorf("Unexpected formatted to: %q", event.FormattedTo)
	}
}

func TestItemBuilder_MultiDay(t *testing.T) {
	event := buildTestEvent(t, "2011-12-05T09:00:00Z", "2011-12-06T10:00:00Z")

	if !event.MultiDay {
		t.Error("Event spanning two days must be multi-day")
	}
}

func TestItemBuilder_MidnightBoundary(t *testing.T) {
	// Ends exactly at midnight of the next day: the end is pulled back one
	// second, so the event does not count the extra day.
	event := buildTestEvent(t, "2011-12-05T00:00:00Z", "2011-12-06T00:00:00Z")

	if event.MultiDay {
		t.Error("Event ending exactly at midnight must not span an extra day")
	}

	expectedTo := time.Date(2011, 12, 6, 0, 0, 0, 0, time.UTC).Unix() - 1
	if event.To != expectedTo {
		t.Errorf("Expected adjusted to %d, got %d", expectedTo, event.To)
	}
	if event.FormattedTo != "2011-12-05 23:59" {
		t.Errorf("Expected formatted to from adjusted value, got %q", event.FormattedTo)
	}
}

func TestItemBuilder_MidnightBoundaryMultiDay(t *testing.T) {
	// Two full days ending at midnight: still multi-day after the
	// one-second correction.
	event := buildTestEvent(t, "2011-12-05T00:00:00Z", "2011-12-07T00:00:00Z")

	if !event.MultiDay {
		t.Error("Two-day span must remain multi-day after midnight correction")
	}
}

func TestItemBuilder_AllDayDates(t *testing.T) {
	event := buildTestEvent(t, "2011-12-10", "2011-12-12")

	if event.From != time.Date(2011, 12, 10, 0, 0, 0, 0, time.UTC).Unix() {
		t.Errorf("Unexpected from for all-day event: %d", event.From)
	}
	if !event.MultiDay {
		t.Error("Two-day all-day event must be multi-day")
	}
}

func TestItemBuilder_SanitizesFields(t *testing.T) {
	opts := DefaultOptions()
	builder := NewItemBuilder(opts)

	event := builder.Run(RawEntry{
		ID:         "event-1",
		Title:      "<b>Big</b> Meeting",
		Content:    "Agenda at http://example.com/agenda",
		WhereValue: "<i>Room 4</i>",
		Author:     "Alice",
		WhenStart:  "2011-12-05T09:00:00Z",
		WhenEnd:    "2011-12-05T10:00:00Z",
	})

	if event.Title != "Big Meeting" {
		t.Errorf("Expected stripped title, got %q", event.Title)
	}
	if event.Location != "Room 4" {
		t.Errorf("Expected stripped location, got %q", event.Location)
	}
	if event.Description != `<p>Agenda at <a href="http://example.com/agenda">http://example.com/agenda</a></p>` {
		t.Errorf("Unexpected description: %q", event.Description)
	}
	if event.Author != "Alice" {
		t.Errorf("Expected author 'Alice', got %q", event.Author)
	}
}

func TestItemBuilder_Timestamps(t *testing.T) {
	opts := DefaultOptions()
	builder := NewItemBuilder(opts)

	event := builder.Run(RawEntry{
		ID:        "event-1",
		Published: "2011-11-20T10:00:00Z",
		Updated:   "2011-11-21T09:30:00Z",
		WhenStart: "2011-12-05T09:00:00Z",
	})

	if event.Created != time.Date(2011, 11, 20, 10, 0, 0, 0, time.UTC).Unix() {
		t.Errorf("Unexpected created timestamp: %d", event.Created)
	}
	if event.Modified != time.Date(2011, 11, 21, 9, 30, 0, 0, time.UTC).Unix() {
		t.Errorf("Unexpected modified timestamp: %d", event.Modified)
	}
	if event.To != 0 || event.FormattedTo != "" {
		t.Errorf("Open-ended event must have no end: %d %q", event.To, event.FormattedTo)
	}
}
