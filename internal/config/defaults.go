package config

const (
	defaultDataDir     = "~/.local/share/stylus"
	defaultLogDir      = "~/.local/share/stylus/logs"
	defaultSocketName  = "stylusd.sock"
	defaultSearchLimit = 50
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Matching: Matching{
			SearchLimit: defaultSearchLimit,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
