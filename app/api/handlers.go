package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/calcomb/calcomb/app/cache"
	"github.com/calcomb/calcomb/app/calendar"
	"github.com/calcomb/calcomb/app/cfg"
)

func NewHandler(configCache *calendar.ConfigCache, httpClient *http.Client, cacheDir string) *Handler {
	return &Handler{
		configCache: configCache,
		httpClient:  httpClient,
		cacheDir:    cacheDir,
		icsGen:      calendar.NewICSGenerator(fmt.Sprintf("-//Cal Comb %s//EN", cfg.Get().Version)),
	}
}

// GetCalendar renders a configured calendar. The optional ?query= parameter
// carries selector overrides ("from=2024-06-01, limit=20"); ?format=ics
// switches the output to an iCalendar document.
func (h *Handler) GetCalendar(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	config, err := h.configCache.GetConfig(name)
	if err != nil {
		slog.Error("Calendar configuration not found", "calendar", name, "error", err)
		c.Status(http.StatusNotFound)
		return
	}

	query := config.BuildQuery()
	opts := config.BuildOptions(time.Local)
	if config.Options.CacheTTL == nil {
		opts.CacheTTL = cfg.Get().CacheTTL
	}

	if selector := c.Query("query"); selector != "" {
		if err := calendar.ParseSelector(selector, &query, &opts); err != nil {
			c.String(http.StatusBadRequest, err.Error())
			return
		}
	}

	feedCache, err := cache.NewFileCache(h.cacheDir, opts.CacheTTL)
	if err != nil {
		slog.Error("Cache initialization failed", "calendar", name, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	fetcher := calendar.NewFetcher(h.httpClient, cfg.Get().UserAgent)
	service := calendar.NewService(fetcher, feedCache, opts)

	collection := service.Find(c.Request.Context(), query)

	if err := service.Err(); err != nil {
		slog.Error("Calendar lookup failed", "calendar", name, "error", err)
		c.String(statusForError(err), service.Render(config.BuildMarkup()))
		return
	}

	c.Header("X-Calendar-Events", strconv.Itoa(collection.Len()))
	c.Header("X-Calendar-Name", name)

	if c.Query("format") == "ics" {
		c.Header("Content-Type", "text/calendar; charset=utf-8")
		c.String(http.StatusOK, h.icsGen.Run(collection, name))
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, service.Render(config.BuildMarkup()))
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp":             time.Now().In(time.Local).Format(time.RFC3339),
		"loaded_configurations": h.configCache.GetConfigCount(),
	}

	c.JSON(http.StatusOK, health)
}

// APIListCalendars returns the configured calendars. Gated by the API key.
func (h *Handler) APIListCalendars(c *gin.Context) {
	configs := h.configCache.GetConfigs()

	calendars := make([]map[string]interface{}, 0, len(configs))
	for _, config := range configs {
		query := config.BuildQuery()
		calendars = append(calendars, map[string]interface{}{
			"name":             config.Name,
			"calendar_id":      query.CalendarID,
			"limit":            query.Limit,
			"sort":             string(query.Sort),
			"expand_recurring": query.ExpandRecurring,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"count":     len(calendars),
		"calendars": calendars,
	})
}

// APIEvictCache removes every cached feed document. Gated by the API key.
func (h *Handler) APIEvictCache(c *gin.Context) {
	feedCache, err := cache.NewFileCache(h.cacheDir, 1)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := feedCache.EvictAll(); err != nil {
		slog.Error("Cache eviction failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	slog.Info("Feed cache evicted")
	c.JSON(http.StatusOK, gin.H{"status": "evicted"})
}

func statusForError(err error) int {
	var configErr *calendar.ConfigError
	if errors.As(err, &configErr) {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}
