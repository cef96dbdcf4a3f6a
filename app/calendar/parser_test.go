package calendar

import (
	"errors"
	"strings"
	"testing"
)

const fixtureFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom" xmlns:gd="http://schemas.google.com/g/2005">
  <id>http://www.google.com/calendar/feeds/abc/public/full</id>
  <title type="text">Team Calendar</title>
  <entry>
    <id>http://www.google.com/calendar/feeds/abc/public/full/event1</id>
    <published>2011-11-20T10:00:00.000Z</published>
    <updated>2011-11-21T09:30:00.000Z</updated>
    <title type="text">Planning Session</title>
    <content type="html">Quarterly planning.</content>
    <author>
      <name>Alice Example</name>
      <email>alice@example.com</email>
    </author>
    <gd:where valueString="Room 4"></gd:where>
    <gd:when startTime="2011-12-05T09:00:00.000Z" endTime="2011-12-05T10:00:00.000Z"></gd:when>
  </entry>
  <entry>
    <id>http://www.google.com/calendar/feeds/abc/public/full/event2</id>
    <published>2011-11-22T08:00:00.000Z</published>
    <updated>2011-11-22T08:00:00.000Z</updated>
    <title type="text">Offsite</title>
    <content type="html">Two day offsite.</content>
    <author>
      <name>Bob Example</name>
    </author>
    <gd:where valueString="Mountain Lodge"></gd:where>
    <gd:when startTime="2011-12-10" endTime="2011-12-12"></gd:when>
  </entry>
</feed>`

func TestRewriteVendorTags(t *testing.T) {
	input := `<entry><gd:when startTime="2011-12-05T09:00:00.000Z"></gd:when></entry>`
	expected := `<entry><when startTime="2011-12-05T09:00:00.000Z"></when></entry>`

	result := string(RewriteVendorTags([]byte(input)))
	if result != expected {
		t.Errorf("Expected %q, got %q", expected, result)
	}

	// Rewriting already-rewritten bytes must be a no-op.
	if again := string(RewriteVendorTags([]byte(result))); again != expected {
		t.Errorf("Rewrite is not idempotent: %q", again)
	}
}

func TestParser_Run(t *testing.T) {
	parser := NewParser()

	entries, err := parser.Run([]byte(fixtureFeed))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}

	entry := entries[0]
	if entry.ID != "http://www.google.com/calendar/feeds/abc/public/full/event1" {
		t.Errorf("Unexpected entry id: %q", entry.ID)
	}
	if entry.Title != "Planning Session" {
		t.Errorf("Expected title 'Planning Session', got %q", entry.Title)
	}
	if entry.Content != "Quarterly planning." {
		t.Errorf("Expected content 'Quarterly planning.', got %q", entry.Content)
	}
	if entry.Author != "Alice Example" {
		t.Errorf("Expected author 'Alice Example', got %q", entry.Author)
	}
	if entry.WhereValue != "Room 4" {
		t.Errorf("Expected location 'Room 4', got %q", entry.WhereValue)
	}
	if entry.WhenStart != "2011-12-05T09:00:00.000Z" {
		t.Errorf("Unexpected start time: %q", entry.WhenStart)
	}
	if entry.WhenEnd != "2011-12-05T10:00:00.000Z" {
		t.Errorf("Unexpected end time: %q", entry.WhenEnd)
	}
	if entry.Published != "2011-11-20T10:00:00.000Z" {
		t.Errorf("Unexpected published time: %q", entry.Published)
	}

	// Second entry is an all-day span with bare dates.
	if entries[1].WhenStart != "2011-12-10" || entries[1].WhenEnd != "2011-12-12" {
		t.Errorf("Unexpected all-day span: %q - %q", entries[1].WhenStart, entries[1].WhenEnd)
	}
}

func TestParser_RunMalformed(t *testing.T) {
	parser := NewParser()

	_, err := parser.Run([]byte("<feed><entry><title>broken</feed>"))

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected *ParseError, got: %v", err)
	}
	if len(parseErr.Diagnostics) == 0 {
		t.Error("Expected parser diagnostics to be carried")
	}
	if !strings.Contains(parseErr.Error(), "failed to parse calendar feed") {
		t.Errorf("Unexpected error message: %s", parseErr.Error())
	}
}
