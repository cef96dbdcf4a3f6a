package calendar

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is one calendar definition loaded from a YAML file. The file name
// (without extension) becomes the calendar's public name.
type Config struct {
	Name     string
	Calendar ConfigCalendar `yaml:"calendar"`
	Query    ConfigQuery    `yaml:"query"`
	Options  ConfigOptions  `yaml:"options"`
	Markup   *Markup        `yaml:"markup"`
}

type ConfigCalendar struct {
	// ID is a bare provider calendar identifier; URL is a full feed URL.
	// Exactly one of the two is required.
	ID  string `yaml:"id"`
	URL string `yaml:"url"`
}

type ConfigQuery struct {
	Limit           *int   `yaml:"limit"`
	Sort            string `yaml:"sort"`
	Descending      bool   `yaml:"descending"`
	Keywords        string `yaml:"keywords"`
	ExpandRecurring bool   `yaml:"expand_recurring"`
}

type ConfigOptions struct {
	CacheTTL       *int   `yaml:"cache_ttl"` // seconds
	MaxTextLength  int    `yaml:"max_text_length"`
	StripTags      *bool  `yaml:"strip_tags"`
	EncodeEntities *bool  `yaml:"encode_entities"`
	DateFormat     string `yaml:"date_format"`
	HTML           *bool  `yaml:"html"`
}

// BuildQuery materializes the configured query defaults.
func (c *Config) BuildQuery() Query {
	q := NewQuery()

	if c.Calendar.URL != "" {
		q.CalendarID = c.Calendar.URL
	} else {
		q.CalendarID = c.Calendar.ID
	}

	if c.Query.Limit != nil {
		q.Limit = *c.Query.Limit
	}
	if c.Query.Sort != "" {
		q.Sort = SortField(c.Query.Sort)
	}
	q.Ascending = !c.Query.Descending
	q.Keywords = c.Query.Keywords
	q.ExpandRecurring = c.Query.ExpandRecurring

	return q
}

// BuildOptions materializes the configured processing options on top of the
// defaults, in the given timezone.
func (c *Config) BuildOptions(loc *time.Location) Options {
	opts := DefaultOptions()
	if loc != nil {
		opts.Location = loc
	}

	if c.Options.CacheTTL != nil {
		opts.CacheTTL = *c.Options.CacheTTL
	}
	if c.Options.MaxTextLength > 0 {
		opts.MaxTextLength = c.Options.MaxTextLength
	}
	if c.Options.StripTags != nil {
		opts.StripTags = *c.Options.StripTags
	}
	if c.Options.EncodeEntities != nil {
		opts.EncodeEntities = *c.Options.EncodeEntities
	}
	if c.Options.DateFormat != "" {
		opts.DateFormat = c.Options.DateFormat
	}
	if c.Options.HTML != nil {
		opts.RenderHTML = *c.Options.HTML
	}

	return opts
}

// BuildMarkup returns the configured wrapper set, falling back to the
// defaults for a config without a markup section.
func (c *Config) BuildMarkup() Markup {
	if c.Markup == nil {
		return DefaultMarkup()
	}
	return *c.Markup
}

// ConfigCache loads calendar definitions from a directory of YAML files and
// keeps them cached by name.
type ConfigCache struct {
	calendarsDir string
	cache        map[string]*Config
	mu           sync.RWMutex
}

func NewConfigCache(calendarsDir string) *ConfigCache {
	return &ConfigCache{
		calendarsDir: calendarsDir,
		cache:        make(map[string]*Config),
	}
}

func (cc *ConfigCache) Run() error {
	if _, err := os.Stat(cc.calendarsDir); os.IsNotExist(err) {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(cc.calendarsDir, "*.yml"))
	if err != nil {
		return fmt.Errorf("failed to find YML files: %w", err)
	}

	for _, file := range files {
		fileName := filepath.Base(file)
		calendarName := fileName[:len(fileName)-4] // Remove .yml extension

		config, err := cc.LoadConfig(calendarName)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", file, err)
		}

		slog.Debug("Calendar configuration loaded", "calendar", calendarName,
			"id", config.Calendar.ID, "url", config.Calendar.URL)
	}

	return nil
}

func (cc *ConfigCache) LoadConfig(calendarName string) (*Config, error) {
	configFile := filepath.Join(cc.calendarsDir, calendarName+".yml")

	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	config.Name = calendarName

	if err := cc.validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configFile, err)
	}

	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.cache[config.Name] = &config

	return &config, nil
}

func (cc *ConfigCache) GetConfig(calendarName string) (*Config, error) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	config, ok := cc.cache[calendarName]
	if !ok {
		return nil, fmt.Errorf("calendar config with name '%s' not found", calendarName)
	}

	return config, nil
}

func (cc *ConfigCache) GetConfigs() []*Config {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	configs := make([]*Config, 0, len(cc.cache))
	for _, config := range cc.cache {
		configs = append(configs, config)
	}

	return configs
}

func (cc *ConfigCache) GetConfigCount() int {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	return len(cc.cache)
}

func (cc *ConfigCache) validateConfig(config *Config) error {
	if config.Calendar.ID == "" && config.Calendar.URL == "" {
		return fmt.Errorf("calendar id or url is required")
	}
	if config.Calendar.ID != "" && config.Calendar.URL != "" {
		return fmt.Errorf("calendar id and url are mutually exclusive")
	}

	if config.Query.Limit != nil && *config.Query.Limit < 0 {
		return fmt.Errorf("limit must be non-negative")
	}

	switch SortField(config.Query.Sort) {
	case "", SortDate, SortModified:
	default:
		return fmt.Errorf("invalid sort field: %s", config.Query.Sort)
	}

	if config.Options.CacheTTL != nil && *config.Options.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl must be non-negative")
	}
	if config.Options.MaxTextLength < 0 {
		return fmt.Errorf("max_text_length must be non-negative")
	}

	return nil
}
