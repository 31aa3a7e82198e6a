package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AppConfig holds the tunables that are not secrets.
// Secrets and connection strings stay in plain env vars (.env).
type AppConfig struct {
	Port        string
	CORSOrigins []string
	ConsoleURL  string

	JWTExpiry time.Duration

	RateLimitRequests int
	RateLimitWindow   time.Duration

	MaxImageBytes int64
	PageSize      int

	// DetectionMaxPage caps the limit of one detection list page
	DetectionMaxPage int

	FeedFrameInterval time.Duration
	FeedKeepalive     time.Duration
	FeedStaleAfter    time.Duration

	MQTTBroker   string
	MQTTTopic    string
	MQTTClientID string
}

// DefaultAppConfig returns the values used when neither config.yaml nor env sets a key
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Port:              "8081",
		CORSOrigins:       []string{"http://localhost:3000", "http://localhost:5173"},
		ConsoleURL:        "http://localhost:5173",
		JWTExpiry:         24 * time.Hour,
		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
		MaxImageBytes:     5 << 20,
		PageSize:          10,
		DetectionMaxPage:  500,
		FeedFrameInterval: 200 * time.Millisecond,
		FeedKeepalive:     5 * time.Second,
		FeedStaleAfter:    3 * time.Second,
		MQTTTopic:         "asadel/detections",
		MQTTClientID:      "asadel-console",
	}
}

// App is the loaded configuration; main replaces it at boot
var App = DefaultAppConfig()

// LoadAppConfig reads config.yaml from path (optional) and ASADEL_* env overrides
func LoadAppConfig(path string) AppConfig {
	cfg := DefaultAppConfig()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.SetEnvPrefix("ASADEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, key := range []string{
		"port", "cors_origins", "console_url", "jwt_expiry",
		"rate_limit.requests", "rate_limit.window",
		"upload.max_image_bytes", "page_size",
		"feed.frame_interval", "feed.keepalive", "feed.stale_after",
		"detections.max_page",
		"detections.mqtt_broker", "detections.mqtt_topic", "detections.mqtt_client_id",
	} {
		_ = v.BindEnv(key)
	}

	if err := v.ReadInConfig(); err != nil {
		log.Println("⚠️ No config.yaml found, using defaults and env vars")
	} else {
		log.Println("✅ Loaded", v.ConfigFileUsed())
	}

	if v.IsSet("port") {
		cfg.Port = v.GetString("port")
	}
	if v.IsSet("cors_origins") {
		cfg.CORSOrigins = splitList(v.GetStringSlice("cors_origins"))
	}
	if v.IsSet("console_url") {
		cfg.ConsoleURL = v.GetString("console_url")
	}
	if v.IsSet("jwt_expiry") {
		cfg.JWTExpiry = v.GetDuration("jwt_expiry")
	}
	if v.IsSet("rate_limit.requests") {
		cfg.RateLimitRequests = v.GetInt("rate_limit.requests")
	}
	if v.IsSet("rate_limit.window") {
		cfg.RateLimitWindow = v.GetDuration("rate_limit.window")
	}
	if v.IsSet("upload.max_image_bytes") {
		cfg.MaxImageBytes = v.GetInt64("upload.max_image_bytes")
	}
	if v.IsSet("page_size") {
		cfg.PageSize = v.GetInt("page_size")
	}
	if v.IsSet("feed.frame_interval") {
		cfg.FeedFrameInterval = v.GetDuration("feed.frame_interval")
	}
	if v.IsSet("feed.keepalive") {
		cfg.FeedKeepalive = v.GetDuration("feed.keepalive")
	}
	if v.IsSet("feed.stale_after") {
		cfg.FeedStaleAfter = v.GetDuration("feed.stale_after")
	}
	if v.IsSet("detections.max_page") {
		cfg.DetectionMaxPage = v.GetInt("detections.max_page")
	}
	if v.IsSet("detections.mqtt_broker") {
		cfg.MQTTBroker = v.GetString("detections.mqtt_broker")
	}
	if v.IsSet("detections.mqtt_topic") {
		cfg.MQTTTopic = v.GetString("detections.mqtt_topic")
	}
	if v.IsSet("detections.mqtt_client_id") {
		cfg.MQTTClientID = v.GetString("detections.mqtt_client_id")
	}

	if cfg.PageSize < 1 {
		cfg.PageSize = 10
	}
	if cfg.DetectionMaxPage < cfg.PageSize {
		cfg.DetectionMaxPage = cfg.PageSize
	}
	return cfg
}

// splitList accepts both yaml lists and a single comma separated env value
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
