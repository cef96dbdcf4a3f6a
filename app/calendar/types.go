package calendar

import (
	"time"
)

// Query describes a single calendar lookup: which calendar, which time
// window, and how the provider should sort and bound the result.

type SortField string

const (
	SortDate     SortField = "date"
	SortModified SortField = "modified"
)

type Query struct {
	// CalendarID is either a bare provider calendar identifier or a full
	// feed URL.
	CalendarID string
	Limit      int
	Sort       SortField
	Ascending  bool
	From       int64 // unix seconds, 0 = unset
	To         int64 // unix seconds, 0 = unset
	Keywords   string
	// ExpandRecurring asks the provider to expand recurring events into
	// individual entries.
	ExpandRecurring bool
}

func NewQuery() Query {
	return Query{
		Limit:     100,
		Sort:      SortDate,
		Ascending: true,
	}
}

// Options controls feed processing and rendering.
type Options struct {
	CacheTTL       int // seconds, 0 disables caching
	MaxTextLength  int
	StripTags      bool
	EncodeEntities bool
	DateFormat     string
	RenderHTML     bool
	Location       *time.Location
}

func DefaultOptions() Options {
	return Options{
		CacheTTL:       3600,
		MaxTextLength:  300,
		StripTags:      true,
		EncodeEntities: false,
		DateFormat:     "Jan 2, 2006 3:04 PM",
		RenderHTML:     true,
		Location:       time.UTC,
	}
}

// Markup is the customizable wrapper set used when rendering a collection.
// The {datetime} placeholder inside the date wrappers is replaced with the
// RFC 3339 representation of the event's from/to timestamp.
type Markup struct {
	ListOpen         string `yaml:"list_open"`
	ListClose        string `yaml:"list_close"`
	ItemOpen         string `yaml:"item_open"`
	ItemClose        string `yaml:"item_close"`
	TitleOpen        string `yaml:"title_open"`
	TitleClose       string `yaml:"title_close"`
	DateFromOpen     string `yaml:"date_from_open"`
	DateFromClose    string `yaml:"date_from_close"`
	DateToOpen       string `yaml:"date_to_open"`
	DateToClose      string `yaml:"date_to_close"`
	LocationOpen     string `yaml:"location_open"`
	LocationClose    string `yaml:"location_close"`
	DescriptionOpen  string `yaml:"description_open"`
	DescriptionClose string `yaml:"description_close"`
}

func DefaultMarkup() Markup {
	return Markup{
		ListOpen:         "<ul class=\"events\">\n",
		ListClose:        "</ul>\n",
		ItemOpen:         "<li>",
		ItemClose:        "</li>\n",
		TitleOpen:        "<span class=\"title\">",
		TitleClose:       "</span>",
		DateFromOpen:     "<time class=\"from\" datetime=\"{datetime}\">",
		DateFromClose:    "</time>",
		DateToOpen:       "<time class=\"to\" datetime=\"{datetime}\">",
		DateToClose:      "</time>",
		LocationOpen:     "<span class=\"location\">",
		LocationClose:    "</span>",
		DescriptionOpen:  "<div class=\"description\">",
		DescriptionClose: "</div>",
	}
}

// RawEntry is one feed entry as parsed from the provider document, before
// normalization into an Event.
type RawEntry struct {
	ID         string
	Title      string
	Content    string
	Author     string
	Published  string
	Updated    string
	WhereValue string
	WhenStart  string
	WhenEnd    string
}

// Event is the normalized, sanitized representation of a feed entry.
// Events are built once and never mutated after insertion into a Collection.
type Event struct {
	ExternalID    string
	Title         string
	Description   string
	Location      string
	Author        string
	From          int64
	To            int64
	FormattedFrom string
	FormattedTo   string
	Created       int64
	Modified      int64
	MultiDay      bool
}
