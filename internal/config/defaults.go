package config

const (
	defaultOMDbBaseURL        = "https://www.omdbapi.com/"
	defaultOMDbTimeoutSeconds = 10
	defaultStorageBackend     = BackendFile
	defaultDataDir            = "~/.local/share/moviescores"
	defaultSlot               = "myMovieScores"
	defaultDebounceMillis     = 1000
	defaultLogLevel           = "info"
	defaultLogFormat          = "console"
	defaultLogMaxSizeMB       = 5
	defaultLogMaxBackups      = 3
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		OMDb: OMDb{
			BaseURL:        defaultOMDbBaseURL,
			TimeoutSeconds: defaultOMDbTimeoutSeconds,
		},
		Storage: Storage{
			Backend: defaultStorageBackend,
			DataDir: defaultDataDir,
			Slot:    defaultSlot,
		},
		Search: Search{
			DebounceMillis: defaultDebounceMillis,
		},
		Logging: Logging{
			Level:      defaultLogLevel,
			Format:     defaultLogFormat,
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
		},
	}
}
