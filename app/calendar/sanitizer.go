package calendar

import (
	"html"
	"regexp"
	"strings"
)

var linkPattern = regexp.MustCompile(`https?://[^\s<]+`)

// Sanitizer cleans untrusted free-text fields from the feed: tag stripping,
// multibyte-aware truncation, optional entity re-encoding, and optional
// HTML presentation (linkified URLs, paragraph wrapping).
type Sanitizer struct {
	opts Options
}

func NewSanitizer(opts Options) *Sanitizer {
	return &Sanitizer{opts: opts}
}

// Plain sanitizes a field that is always rendered as text (title, location).
func (s *Sanitizer) Plain(text string) string {
	if s.opts.StripTags {
		text = stripTags(text)
	}

	if s.opts.EncodeEntities {
		text = truncate(html.UnescapeString(text), s.opts.MaxTextLength)
		return html.EscapeString(text)
	}

	return truncate(text, s.opts.MaxTextLength)
}

// Rich sanitizes the description field. When HTML rendering is enabled the
// cleaned text is linkified and paragraph-wrapped; otherwise it behaves
// like Plain.
func (s *Sanitizer) Rich(text string) string {
	text = s.Plain(text)

	if !s.opts.RenderHTML {
		return text
	}

	return autoParagraph(autoLink(text))
}

// stripTags drops <...> sequences. It is deliberately not a full HTML
// parser; feed content with '<' or '>' inside attribute values is rare
// enough that a rune scan is sufficient.
func stripTags(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inTag := false
	for _, r := range s {
		switch r {
		case '<':
			inTag = true
		case '>':
			inTag = false
		default:
			if !inTag {
				b.WriteRune(r)
			}
		}
	}

	return b.String()
}

// truncate limits s to max characters, counting runes rather than bytes.
func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}

	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	return string(runes[:max])
}

// autoLink wraps bare http/https URLs in anchor tags.
func autoLink(s string) string {
	return linkPattern.ReplaceAllString(s, `<a href="$0">$0</a>`)
}

// autoParagraph converts plain-text line structure into HTML: blank lines
// separate paragraphs, single newlines become line breaks.
func autoParagraph(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	paragraphs := strings.Split(s, "\n\n")
	var b strings.Builder

	for _, p := range paragraphs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		b.WriteString("<p>")
		b.WriteString(strings.ReplaceAll(p, "\n", "<br />"))
		b.WriteString("</p>")
	}

	return b.String()
}
