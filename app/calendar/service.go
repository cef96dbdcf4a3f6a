package calendar

import (
	"context"
	"errors"
	"log/slog"

	"github.com/calcomb/calcomb/app/cache"
)

// FeedCache is the injected blob store for raw feed documents.
type FeedCache interface {
	Get(url string) ([]byte, error)
	Put(url string, data []byte) error
}

// Service orchestrates one calendar lookup: build the request URL, resolve
// the document from cache or upstream, parse, normalize and filter entries
// into a collection. Failures are recorded as the service's last error and
// short-circuit the remaining steps, leaving the collection empty.
type Service struct {
	fetcher *Fetcher
	parser  *Parser
	cache   FeedCache
	opts    Options

	collection *Collection
	err        error
}

func NewService(fetcher *Fetcher, feedCache FeedCache, opts Options) *Service {
	return &Service{
		fetcher:    fetcher,
		parser:     NewParser(),
		cache:      feedCache,
		opts:       opts,
		collection: NewCollection(),
	}
}

// Find runs the lookup and returns the populated collection. On failure the
// collection is empty and the error is retrievable via Err.
func (s *Service) Find(ctx context.Context, q Query) *Collection {
	s.collection = NewCollection()
	s.err = nil

	if q.CalendarID == "" {
		return s.fail(&ConfigError{Msg: "no calendar specified"})
	}

	url := q.BuildURL()

	data, err := s.resolve(ctx, url)
	if err != nil {
		return s.fail(err)
	}

	entries, err := s.parser.Run(data)
	if err != nil {
		return s.fail(err)
	}

	s.populate(entries, q)

	return s.collection
}

// resolve returns the feed document from the cache when fresh, fetching and
// caching it otherwise. The vendor tag rewrite is applied before the bytes
// are persisted, so cached documents are already rewritten.
func (s *Service) resolve(ctx context.Context, url string) ([]byte, error) {
	if s.cache != nil {
		data, err := s.cache.Get(url)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, cache.ErrNotCached) {
			// A vanished or unreadable entry is a fetch failure, not a miss.
			return nil, &FetchError{URL: url, Err: err}
		}
	}

	data, err := s.fetcher.Run(ctx, url)
	if err != nil {
		return nil, err
	}

	data = RewriteVendorTags(data)

	if s.cache != nil {
		if err := s.cache.Put(url, data); err != nil {
			slog.Error("Failed to cache feed document", "url", url, "error", err)
		}
	}

	return data, nil
}

// populate scans at most q.Limit raw entries, normalizes each, and keeps
// those starting inside the requested window. Entries dropped by the filter
// still count against the scan bound.
func (s *Service) populate(entries []RawEntry, q Query) {
	builder := NewItemBuilder(s.opts)

	for i, entry := range entries {
		if q.Limit > 0 && i >= q.Limit {
			break
		}

		event := builder.Run(entry)

		// A multi-day event whose span merely overlaps the window but
		// started earlier is excluded.
		if q.From != 0 && event.From < q.From {
			continue
		}

		s.collection.Add(event)
	}
}

// Err returns the error recorded by the most recent Find, if any.
func (s *Service) Err() error {
	return s.err
}

// Render delegates to the collection. An empty collection renders the last
// error text.
func (s *Service) Render(m Markup) string {
	return s.collection.Render(m)
}

func (s *Service) fail(err error) *Collection {
	s.err = err
	s.collection.SetLastError(err.Error())
	return s.collection
}
