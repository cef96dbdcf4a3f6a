package cfg

type Cfg struct {
	// Application configuration
	CalendarsDir string
	CacheDir     string
	CacheTTL     int
	Port         string
	BaseUrl      string
	APIAccessKey string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
