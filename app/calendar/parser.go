package calendar

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// RewriteVendorTags rewrites the provider's gd: namespace prefix on opening
// and closing tags to unprefixed tags. The structural parse step does not
// resolve that namespace, so <gd:when .../> becomes <when .../>. The rewrite
// is idempotent; bytes already rewritten pass through unchanged.
func RewriteVendorTags(data []byte) []byte {
	data = bytes.ReplaceAll(data, []byte("<gd:"), []byte("<"))
	data = bytes.ReplaceAll(data, []byte("</gd:"), []byte("</"))
	return data
}

type feedDocument struct {
	XMLName xml.Name    `xml:"feed"`
	Entries []feedEntry `xml:"entry"`
}

type feedEntry struct {
	ID        string      `xml:"id"`
	Published string      `xml:"published"`
	Updated   string      `xml:"updated"`
	Title     string      `xml:"title"`
	Content   string      `xml:"content"`
	Author    entryAuthor `xml:"author"`
	Where     entryWhere  `xml:"where"`
	When      entryWhen   `xml:"when"`
}

type entryAuthor struct {
	Name  string `xml:"name"`
	Email string `xml:"email"`
}

type entryWhere struct {
	ValueString string `xml:"valueString,attr"`
}

type entryWhen struct {
	StartTime string `xml:"startTime,attr"`
	EndTime   string `xml:"endTime,attr"`
}

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Run parses the raw feed document into entries, applying the vendor tag
// rewrite first.
func (p *Parser) Run(data []byte) ([]RawEntry, error) {
	data = RewriteVendorTags(data)

	var doc feedDocument
	decoder := xml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&doc); err != nil {
		return nil, &ParseError{Diagnostics: diagnostics(err)}
	}

	entries := make([]RawEntry, 0, len(doc.Entries))
	for _, entry := range doc.Entries {
		entries = append(entries, RawEntry{
			ID:         entry.ID,
			Title:      entry.Title,
			Content:    entry.Content,
			Author:     entry.Author.Name,
			Published:  entry.Published,
			Updated:    entry.Updated,
			WhereValue: entry.Where.ValueString,
			WhenStart:  entry.When.StartTime,
			WhenEnd:    entry.When.EndTime,
		})
	}

	return entries, nil
}

func diagnostics(err error) []string {
	if syntaxErr, ok := err.(*xml.SyntaxError); ok {
		return []string{fmt.Sprintf("line %d: %s", syntaxErr.Line, syntaxErr.Msg)}
	}
	return []string{err.Error()}
}
