package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr           string `mapstructure:"addr"`
		AllowedOrigins string `mapstructure:"allowed_origins"`
		MaxUploadMB    int64  `mapstructure:"max_upload_mb"`
	} `mapstructure:"server"`
	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
	Database struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`
	Auth struct {
		AccessTokenSecret  string        `mapstructure:"access_token_secret"`
		AccessTokenTTL     time.Duration `mapstructure:"access_token_ttl"`
		RefreshTokenSecret string        `mapstructure:"refresh_token_secret"`
		RefreshTokenTTL    time.Duration `mapstructure:"refresh_token_ttl"`
		RefreshPolicy      string        `mapstructure:"refresh_policy"`
		CookieSecure       bool          `mapstructure:"cookie_secure"`
		CookieDomain       string        `mapstructure:"cookie_domain"`
		CookieSameSite     string        `mapstructure:"cookie_same_site"`
	} `mapstructure:"auth"`
	Media struct {
		TempDir          string `mapstructure:"temp_dir"`
		LocalDir         string `mapstructure:"local_dir"`
		LocalBaseURL     string `mapstructure:"local_base_url"`
		DefaultThumbnail string `mapstructure:"default_thumbnail"`

		// DurationCommand is the FFmpeg inspector binary used to read video lengths.
		DurationCommand string        `mapstructure:"duration_command"`
		DurationTimeout time.Duration `mapstructure:"duration_timeout"`
	} `mapstructure:"media"`
	Storage struct {
		Bucket        string `mapstructure:"bucket"`
		KeyPrefix     string `mapstructure:"key_prefix"`
		Region        string `mapstructure:"region"`
		Endpoint      string `mapstructure:"endpoint"`
		PublicBaseURL string `mapstructure:"public_base_url"`
	} `mapstructure:"storage"`
	AWS struct {
		Profile string `mapstructure:"profile"`
	} `mapstructure:"aws"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`
	RateLimit struct {
		Requests int           `mapstructure:"requests"`
		Window   time.Duration `mapstructure:"window"`
		Burst    int           `mapstructure:"burst"`
	} `mapstructure:"rate_limit"`
}

// Load reads configuration from environment variables and optional config files.
// Variables use the VIDTUBE_ prefix, e.g. VIDTUBE_AUTH_ACCESS_TOKEN_SECRET.
func Load() (Config, error) {
	// a missing .env is fine; real environment variables win
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("VIDTUBE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:8000")
	v.SetDefault("server.allowed_origins", "http://localhost:3000")
	v.SetDefault("server.max_upload_mb", 512)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("database.path", "data/vidtube.db")
	v.SetDefault("auth.access_token_secret", "")
	v.SetDefault("auth.access_token_ttl", "15m")
	v.SetDefault("auth.refresh_token_secret", "")
	v.SetDefault("auth.refresh_token_ttl", "240h")
	v.SetDefault("auth.refresh_policy", "reuse")
	v.SetDefault("auth.cookie_secure", true)
	v.SetDefault("auth.cookie_domain", "")
	v.SetDefault("auth.cookie_same_site", "lax")
	v.SetDefault("media.temp_dir", "data/tmp")
	v.SetDefault("media.local_dir", "data/media")
	v.SetDefault("media.local_base_url", "/media")
	v.SetDefault("media.default_thumbnail", "")
	v.SetDefault("media.duration_command", "ffprobe")
	v.SetDefault("media.duration_timeout", "30s")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.key_prefix", "vidtube")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.public_base_url", "")
	v.SetDefault("aws.profile", "")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("rate_limit.requests", 20)
	v.SetDefault("rate_limit.window", "1m")
	v.SetDefault("rate_limit.burst", 5)

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Validate reports settings the server cannot start with.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Auth.AccessTokenSecret) == "" {
		errs = append(errs, errors.New("auth.access_token_secret is required"))
	}
	if strings.TrimSpace(c.Auth.RefreshTokenSecret) == "" {
		errs = append(errs, errors.New("auth.refresh_token_secret is required"))
	}
	if c.Auth.AccessTokenSecret != "" && c.Auth.AccessTokenSecret == c.Auth.RefreshTokenSecret {
		errs = append(errs, errors.New("access and refresh token secrets must differ"))
	}
	if c.Auth.AccessTokenTTL <= 0 || c.Auth.RefreshTokenTTL <= 0 {
		errs = append(errs, errors.New("token ttls must be positive"))
	}
	switch strings.ToLower(c.Auth.RefreshPolicy) {
	case "", "reuse", "rotate":
	default:
		errs = append(errs, fmt.Errorf("auth.refresh_policy %q must be reuse or rotate", c.Auth.RefreshPolicy))
	}
	if c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0 {
		errs = append(errs, errors.New("rate_limit.requests and rate_limit.window must be positive"))
	}
	return errors.Join(errs...)
}

// Origins splits the comma separated allow list.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.Server.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
