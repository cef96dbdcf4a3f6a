package api

import (
	"net/http"

	"github.com/calcomb/calcomb/app/calendar"
)

type Handler struct {
	configCache *calendar.ConfigCache
	httpClient  *http.Client
	cacheDir    string
	icsGen      *calendar.ICSGenerator
}
