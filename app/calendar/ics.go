package calendar

import (
	"time"

	ical "github.com/arran4/golang-ical"
)

// ICSGenerator renders a collection as an iCalendar document, as an
// alternative to the markup renderer.
type ICSGenerator struct {
	productID string
}

func NewICSGenerator(productID string) *ICSGenerator {
	return &ICSGenerator{productID: productID}
}

func (g *ICSGenerator) Run(collection *Collection, calendarName string) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(g.productID)
	cal.SetName(calendarName)

	for _, event := range collection.Events() {
		vevent := cal.AddEvent(event.ExternalID)

		vevent.SetSummary(event.Title)

		if event.From > 0 {
			vevent.SetStartAt(time.Unix(event.From, 0).UTC())
		}
		if event.To > 0 {
			vevent.SetEndAt(time.Unix(event.To, 0).UTC())
		}
		if event.Created > 0 {
			vevent.SetCreatedTime(time.Unix(event.Created, 0).UTC())
		}
		if event.Modified > 0 {
			vevent.SetModifiedAt(time.Unix(event.Modified, 0).UTC())
		}

		if event.Location != "" {
			vevent.SetLocation(event.Location)
		}
		if event.Description != "" {
			vevent.SetDescription(event.Description)
		}
		if event.Author != "" {
			vevent.SetOrganizer(event.Author)
		}
	}

	return cal.Serialize()
}
