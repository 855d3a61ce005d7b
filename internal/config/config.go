package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
)

const (
	defaultRadarURL    = "https://www.jma.go.jp/bosai/nowc/#zoom:11/lat:35.681236/lon:139.767125/colordepth:normal/elements:hrpns"
	defaultForecastURL = "https://weather.yahoo.co.jp/weather/jp/13/4410.html"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	PanelWidth  int
	PanelHeight int

	RadarURL    string
	RadarWidth  int
	RadarHeight int

	ForecastURL    string
	ForecastWidth  int
	ForecastHeight int

	// Browser automation collaborator (screenshots and table extraction).
	BrowserURL     string
	BrowserTimeout time.Duration

	IconTimeout   time.Duration
	IconCacheSize int

	// UpscalerURL selects the remote super-resolution model. Empty means the
	// local Catmull-Rom resampler is used.
	UpscalerURL     string
	UpscalerTimeout time.Duration

	ToneStep  int
	IconGamma float64
	IconScale float64

	RingDiameter float64
	RingStroke   float64

	FontDir string
	Fonts   FontFiles

	RenderInterval time.Duration

	// Kafka publishing is enabled when KAFKA_BROKERS is set.
	KafkaBrokers []string
	KafkaTopic   string
	KafkaEnabled bool

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// FontFiles names the font file for each face role, relative to FontDir.
type FontFiles struct {
	JPMedium  string
	JPRegular string
	JPBold    string
	ENHeavy   string
	ENMedium  string
	ENBold    string
}

// Load reads configuration from environment variables, applying defaults where unset.
// A .env file in the working directory is loaded first when present; variables
// already set in the environment take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	p := &parser{}
	cfg := &Config{
		PanelWidth:  p.positiveInt("PANEL_WIDTH", 3200),
		PanelHeight: p.positiveInt("PANEL_HEIGHT", 1800),

		RadarURL:    sharedcfg.EnvOrDefault("RADAR_URL", defaultRadarURL),
		RadarWidth:  p.positiveInt("RADAR_WIDTH", 3200),
		RadarHeight: p.positiveInt("RADAR_HEIGHT", 1200),

		ForecastURL:    sharedcfg.EnvOrDefault("FORECAST_URL", defaultForecastURL),
		ForecastWidth:  p.positiveInt("FORECAST_WIDTH", 3200),
		ForecastHeight: p.positiveInt("FORECAST_HEIGHT", 600),

		BrowserURL:     sharedcfg.EnvOrDefault("BROWSER_URL", "http://localhost:9222"),
		BrowserTimeout: p.duration("BROWSER_TIMEOUT", "30s"),

		IconTimeout:   p.duration("ICON_TIMEOUT", "5s"),
		IconCacheSize: parseIconCacheSize(),

		UpscalerURL:     os.Getenv("UPSCALER_URL"),
		UpscalerTimeout: p.duration("UPSCALER_TIMEOUT", "10s"),

		ToneStep:  p.positiveInt("TONE_STEP", 32),
		IconGamma: p.positiveFloat("ICON_GAMMA", 0.24),
		IconScale: p.positiveFloat("ICON_SCALE", 1.6),

		RingDiameter: p.positiveFloat("RING_DIAMETER", 200),
		RingStroke:   p.positiveFloat("RING_STROKE", 2),

		FontDir: sharedcfg.EnvOrDefault("FONT_DIR", "./font"),
		Fonts: FontFiles{
			JPMedium:  sharedcfg.EnvOrDefault("FONT_JP_MEDIUM", "NotoSansJP-Medium.ttf"),
			JPRegular: sharedcfg.EnvOrDefault("FONT_JP_REGULAR", "NotoSansJP-Regular.ttf"),
			JPBold:    sharedcfg.EnvOrDefault("FONT_JP_BOLD", "NotoSansJP-Bold.ttf"),
			ENHeavy:   sharedcfg.EnvOrDefault("FONT_EN_HEAVY", "Inter-Black.ttf"),
			ENMedium:  sharedcfg.EnvOrDefault("FONT_EN_MEDIUM", "Inter-Medium.ttf"),
			ENBold:    sharedcfg.EnvOrDefault("FONT_EN_BOLD", "Inter-Bold.ttf"),
		},

		RenderInterval: p.duration("RENDER_INTERVAL", "10m"),

		KafkaTopic: sharedcfg.EnvOrDefault("KAFKA_TOPIC", "weather-panel-frames"),

		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
	}
	if p.err != nil {
		return nil, p.err
	}

	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		cfg.KafkaBrokers = sharedcfg.ParseBrokers(raw)
		cfg.KafkaEnabled = len(cfg.KafkaBrokers) > 0
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.BrowserURL == "" {
		return errors.New("BROWSER_URL is required")
	}
	if c.RadarURL == "" {
		return errors.New("RADAR_URL is required")
	}
	if c.ForecastURL == "" {
		return errors.New("FORECAST_URL is required")
	}
	if c.RadarWidth > c.PanelWidth || c.ForecastWidth > c.PanelWidth {
		return errors.New("RADAR_WIDTH and FORECAST_WIDTH must not exceed PANEL_WIDTH")
	}
	if c.RadarHeight+c.ForecastHeight > c.PanelHeight {
		return errors.New("RADAR_HEIGHT + FORECAST_HEIGHT must not exceed PANEL_HEIGHT")
	}
	if c.ToneStep > 255 {
		return errors.New("TONE_STEP must be in 1..255")
	}
	if c.KafkaEnabled && c.KafkaTopic == "" {
		return errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}
	return nil
}

// parser accumulates the first parse failure so Load can read every key in
// one struct literal.
type parser struct {
	err error
}

func (p *parser) fail(key, raw string) {
	if p.err == nil {
		p.err = fmt.Errorf("invalid %s: %q", key, raw)
	}
}

func (p *parser) positiveInt(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		p.fail(key, raw)
		return def
	}
	return n
}

func (p *parser) positiveFloat(key string, def float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f <= 0 {
		p.fail(key, raw)
		return def
	}
	return f
}

func (p *parser) duration(key, def string) time.Duration {
	raw := sharedcfg.EnvOrDefault(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		p.fail(key, raw)
		return 0
	}
	return d
}

func parseIconCacheSize() int {
	if s := os.Getenv("ICON_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 64
}
