// Package config loads settings for the inflexion binaries from
// defaults, a YAML config file, INFLEXION_* environment variables and
// command-line flags, in increasing order of precedence.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "INFLEXION"

// Config is the full configuration.
type Config struct {
	Data   Data   `mapstructure:"data" yaml:"data"`
	Server Server `mapstructure:"server" yaml:"server"`
	Log    Log    `mapstructure:"log" yaml:"log"`
}

// Data locates the noun and preposition files.
type Data struct {
	// Dir holds nouns.txt and prepositions.txt; empty means built-in.
	Dir       string   `mapstructure:"dir" yaml:"dir"`
	UserNouns []string `mapstructure:"user_nouns" yaml:"user_nouns"`
	// Watch reloads the data when files under Dir or UserNouns change.
	Watch    bool          `mapstructure:"watch" yaml:"watch"`
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce"`
}

// Server configures the HTTP service.
type Server struct {
	Addr            string        `mapstructure:"addr" yaml:"addr"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// Log configures the zap logger.
type Log struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// flagKeys maps flag names to configuration keys.
var flagKeys = map[string]string{
	"data":             "data.dir",
	"user-nouns":       "data.user_nouns",
	"watch":            "data.watch",
	"addr":             "server.addr",
	"allowed-origins":  "server.allowed_origins",
	"shutdown-timeout": "server.shutdown_timeout",
	"log-level":        "log.level",
	"log-format":       "log.format",
}

// DefineFlags registers the flags shared by every binary on fs.
func DefineFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to a YAML config file")
	fs.String("data", "", "directory holding nouns.txt and prepositions.txt (default: built-in data)")
	fs.StringSlice("user-nouns", nil, "extra noun rule files loaded ahead of the predefined rules")
	fs.String("log-level", "", "log level: debug, info, warn, error")
	fs.String("log-format", "", "log format: console or json")
}

// DefineServerFlags registers the flags only the HTTP service uses.
func DefineServerFlags(fs *pflag.FlagSet) {
	fs.String("addr", "", "listen address")
	fs.StringSlice("allowed-origins", nil, "CORS allowed origins")
	fs.Bool("watch", false, "reload the data files when they change")
	fs.Duration("shutdown-timeout", 0, "grace period for in-flight requests on shutdown")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data.dir", "")
	v.SetDefault("data.user_nouns", []string{})
	v.SetDefault("data.watch", false)
	v.SetDefault("data.debounce", 500*time.Millisecond)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// Load builds the configuration. fs may be nil; only flags the user set
// explicitly override the other sources.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	var cfgPath string
	if fs != nil {
		if f := fs.Lookup("config"); f != nil {
			cfgPath = f.Value.String()
		}
	}
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.SetConfigName("inflexion")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/inflexion")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config file")
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		bindChangedFlags(v, fs)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	return &cfg, nil
}

func bindChangedFlags(v *viper.Viper, fs *pflag.FlagSet) {
	fs.Visit(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok {
			return
		}
		switch f.Value.Type() {
		case "stringSlice":
			val, _ := fs.GetStringSlice(f.Name)
			v.Set(key, val)
		case "bool":
			val, _ := fs.GetBool(f.Name)
			v.Set(key, val)
		case "duration":
			val, _ := fs.GetDuration(f.Name)
			v.Set(key, val)
		default:
			v.Set(key, f.Value.String())
		}
	})
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"console", "json"}
)

// Validate checks the configuration for values the binaries cannot use.
func (c *Config) Validate() error {
	if !contains(logLevels, c.Log.Level) {
		return errors.Newf("log.level %q must be one of %s", c.Log.Level, strings.Join(logLevels, ", "))
	}
	if !contains(logFormats, c.Log.Format) {
		return errors.Newf("log.format %q must be one of %s", c.Log.Format, strings.Join(logFormats, ", "))
	}
	if c.Data.Dir != "" {
		info, err := os.Stat(c.Data.Dir)
		if err != nil {
			return errors.Wrap(err, "data.dir")
		}
		if !info.IsDir() {
			return errors.Newf("data.dir %q is not a directory", c.Data.Dir)
		}
	}
	for _, path := range c.Data.UserNouns {
		if _, err := os.Stat(path); err != nil {
			return errors.Wrap(err, "data.user_nouns")
		}
	}
	if c.Data.Watch && c.Data.Dir == "" && len(c.Data.UserNouns) == 0 {
		return errors.WithHint(
			errors.New("data.watch needs data.dir or data.user_nouns"),
			"the built-in data cannot change; point data.dir at a copy of it")
	}
	if c.Data.Debounce < 0 {
		return errors.New("data.debounce must not be negative")
	}
	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
