package calendar

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// publicFeedURL is the provider's public feed location for a bare calendar
// identifier.
const publicFeedURL = "http://www.google.com/calendar/feeds/%s/public/full"

// BuildURL translates the query into the provider's feed request URL.
// Parameters are appended in a fixed order so produced URLs are stable.
func (q Query) BuildURL() string {
	var b strings.Builder

	feedURL := q.CalendarID
	if strings.Contains(feedURL, "://") {
		// The provider's feed endpoint only answers on the plain scheme.
		feedURL = strings.Replace(feedURL, "https://", "http://", 1)
	} else {
		feedURL = fmt.Sprintf(publicFeedURL, url.PathEscape(feedURL))
	}

	b.WriteString(feedURL)
	if strings.Contains(feedURL, "?") {
		b.WriteString("&")
	} else {
		b.WriteString("?")
	}

	// Respect a start-time filter already baked into a full feed URL.
	if (q.From != 0 || q.To != 0) && !strings.Contains(feedURL, "start-min") {
		if q.From != 0 {
			b.WriteString("start-min=")
			b.WriteString(url.QueryEscape(time.Unix(q.From, 0).UTC().Format(time.RFC3339)))
			b.WriteString("&")
		}
		if q.To != 0 {
			b.WriteString("start-max=")
			b.WriteString(url.QueryEscape(time.Unix(q.To, 0).UTC().Format(time.RFC3339)))
			b.WriteString("&")
		}
	}

	if !strings.Contains(feedURL, "orderby") {
		if q.Sort == SortModified {
			b.WriteString("orderby=lastmodified&")
		} else {
			b.WriteString("orderby=starttime&")
		}
	}

	if !strings.Contains(feedURL, "sortorder") {
		if q.Ascending {
			b.WriteString("sortorder=ascending&")
		} else {
			b.WriteString("sortorder=descending&")
		}
	}

	if q.Keywords != "" {
		b.WriteString("q=")
		b.WriteString(url.QueryEscape(q.Keywords))
		b.WriteString("&")
	}

	if q.Limit > 0 {
		fmt.Fprintf(&b, "max-results=%d&", q.Limit)
	}

	if q.ExpandRecurring {
		b.WriteString("singleevents=true&")
	}

	return strings.TrimRight(b.String(), "?&")
}
