package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"anti_bark/internal/device"

	"github.com/spf13/viper"
)

const envPrefix = "ANTIBARK"

// Config is the resolved process configuration.
type Config struct {
	Port     string
	LogLevel string
	DBPath   string

	SigningKey string
	TokenTTL   time.Duration

	Tick         time.Duration
	KeyQueueSize int
	RandomSeed   uint64
	Device       device.Options
}

func setDefaults(v *viper.Viper) {
	d := device.DefaultOptions()

	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("db.path", "anti_bark.db")
	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.token_ttl", time.Hour)

	v.SetDefault("device.tick", 10*time.Millisecond)
	v.SetDefault("device.ir_idle_timeout", d.IdleTimeout)
	v.SetDefault("device.feedback_flash", d.FeedbackFlash)
	v.SetDefault("device.self_test_step", time.Second)
	v.SetDefault("device.menu_indicator", d.MenuIndicator)
	v.SetDefault("device.min_interval", d.MinIntervalSeconds)
	v.SetDefault("device.key_queue_size", 16)
	v.SetDefault("device.random_seed", 0)
}

// Load reads configs/config.yml (or the file at path, when given) and applies
// ANTIBARK_* environment overrides, e.g. ANTIBARK_DEVICE_IR_IDLE_TIMEOUT=10s.
// A missing config file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("configs")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Port:         v.GetString("port"),
		LogLevel:     v.GetString("log.level"),
		DBPath:       v.GetString("db.path"),
		SigningKey:   v.GetString("auth.signing_key"),
		TokenTTL:     v.GetDuration("auth.token_ttl"),
		Tick:         v.GetDuration("device.tick"),
		KeyQueueSize: v.GetInt("device.key_queue_size"),
		RandomSeed:   v.GetUint64("device.random_seed"),
		Device: device.Options{
			IdleTimeout:        v.GetDuration("device.ir_idle_timeout"),
			FeedbackFlash:      v.GetDuration("device.feedback_flash"),
			SelfTestStep:       v.GetDuration("device.self_test_step"),
			MenuIndicator:      v.GetBool("device.menu_indicator"),
			MinIntervalSeconds: v.GetUint32("device.min_interval"),
		},
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Tick <= 0 {
		return fmt.Errorf("device.tick must be positive, got %s", c.Tick)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive, got %s", c.TokenTTL)
	}
	if c.Device.IdleTimeout <= 0 {
		return fmt.Errorf("device.ir_idle_timeout must be positive, got %s", c.Device.IdleTimeout)
	}
	if c.Device.MinIntervalSeconds < device.MinTimeIntervalSeconds {
		return fmt.Errorf("device.min_interval must be at least %d", device.MinTimeIntervalSeconds)
	}
	return nil
}
