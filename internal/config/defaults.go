package config

const (
	defaultOutputDir      = "~/.local/share/subtext/output"
	defaultReviewDir      = "~/.local/share/subtext/review"
	defaultLogDir         = "~/.local/share/subtext/logs"
	defaultGlossaryDir    = "~/.config/subtext/glossary"
	defaultCachePath      = "~/.cache/subtext/transcripts.db"
	defaultUserAgent      = "Mozilla/5.0 (X11; Linux x86_64; rv:127.0) Gecko/20100101 Firefox/127.0"
	defaultConnectTimeout = 10
	defaultReadTimeout    = 30
	defaultYtDlpBinary    = "yt-dlp"
	defaultYtDlpTimeout   = 120
	defaultLLMBaseURL     = "https://api.openai.com/v1"
	defaultLLMModel       = "gpt-4o-mini"
	defaultLLMTimeout     = 60
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			ReviewDir: defaultReviewDir,
			LogDir:    defaultLogDir,
		},
		HTTP: HTTP{
			UserAgent:             defaultUserAgent,
			ConnectTimeoutSeconds: defaultConnectTimeout,
			ReadTimeoutSeconds:    defaultReadTimeout,
		},
		YtDlp: YtDlp{
			Enabled:        true,
			Binary:         defaultYtDlpBinary,
			TimeoutSeconds: defaultYtDlpTimeout,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			TimeoutSeconds: defaultLLMTimeout,
		},
		Glossary: Glossary{
			Dir: defaultGlossaryDir,
		},
		Cache: Cache{
			Enabled: true,
			Path:    defaultCachePath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
