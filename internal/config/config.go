// Package config loads freightbill settings from config.yaml and
// FREIGHTBILL_* environment variables. Environment values win.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// FREIGHTBILL_SMTP_HOST for smtp.host.
const EnvPrefix = "FREIGHTBILL"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

var validate = validator.New()

// Config groups all settings.
type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Issuer IssuerConfig `mapstructure:"issuer"`
	Output OutputConfig `mapstructure:"output"`
	SMTP   SMTPConfig   `mapstructure:"smtp"`
	Email  EmailConfig  `mapstructure:"email"`
}

// AppConfig selects logging behaviour.
type AppConfig struct {
	Env      string `mapstructure:"env"` // development, production
	LogLevel string `mapstructure:"log_level"`
}

// IssuerConfig is the transporter printed in the bill footer.
type IssuerConfig struct {
	Company string `mapstructure:"company" validate:"required"`
	Bank    string `mapstructure:"bank"`
	Branch  string `mapstructure:"branch"`
	Account string `mapstructure:"account"`
	IFSC    string `mapstructure:"ifsc"`
	PAN     string `mapstructure:"pan"`
}

// OutputConfig controls where files are written.
type OutputConfig struct {
	Dir  string `mapstructure:"dir" validate:"required"`
	XLSX bool   `mapstructure:"xlsx"` // also write Bill.xlsx
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type EmailConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	From    string `mapstructure:"from" validate:"required_if=Enabled true"`
	To      string `mapstructure:"to" validate:"required_if=Enabled true"`
	Subject string `mapstructure:"subject"`
}

// Load reads the configuration. With an empty file it looks for config.yaml
// in . and ./config and carries on without one; a named file must exist.
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it during
// Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "production")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("issuer.company", "")
	v.SetDefault("issuer.bank", "")
	v.SetDefault("issuer.branch", "")
	v.SetDefault("issuer.account", "")
	v.SetDefault("issuer.ifsc", "")
	v.SetDefault("issuer.pan", "")

	v.SetDefault("output.dir", ".")
	v.SetDefault("output.xlsx", false)

	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.username", "")
	v.SetDefault("smtp.password", "")

	v.SetDefault("email.enabled", false)
	v.SetDefault("email.from", "")
	v.SetDefault("email.to", "")
	v.SetDefault("email.subject", "Freight bill")
}

// Validate checks the settings the CLI cannot run without. SMTP settings
// only matter when email is enabled.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s failed %q", ErrInvalid, verrs[0].Namespace(), verrs[0].Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if !c.Email.Enabled {
		return nil
	}
	if c.SMTP.Host == "" {
		return fmt.Errorf("%w: smtp.host is required when email is enabled", ErrInvalid)
	}
	if c.SMTP.Port <= 0 || c.SMTP.Port > 65535 {
		return fmt.Errorf("%w: smtp.port %d out of range", ErrInvalid, c.SMTP.Port)
	}
	return nil
}
