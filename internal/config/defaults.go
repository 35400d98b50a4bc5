package config

const (
	defaultDataDir                    = "~/.local/share/minutes"
	defaultLogDir                     = "~/.local/share/minutes/logs"
	defaultLanguage                   = "en"
	defaultTranscriptionBaseURL       = "http://127.0.0.1:8080/api/transcribe"
	defaultTranscriptionTimeoutSecond = 60
	defaultLogFormat                  = "console"
	defaultLogLevel                   = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Locale: Locale{
			Language: defaultLanguage,
		},
		Transcription: Transcription{
			BaseURL:        defaultTranscriptionBaseURL,
			TimeoutSeconds: defaultTranscriptionTimeoutSecond,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
