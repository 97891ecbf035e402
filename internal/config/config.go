package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type SMSConfig struct {
	APIKey   string `yaml:"api_key"`
	SenderID string `yaml:"sender_id"`
	DryRun   bool   `yaml:"dry_run"`
}

// Durations are stored as plain seconds in YAML.
type JWTConfig struct {
	Secret              string `yaml:"secret"`
	AccessTokenExpires  int    `yaml:"access_token_expires"`
	RefreshTokenExpires int    `yaml:"refresh_token_expires"`
}

func (c JWTConfig) AccessTTL() time.Duration  { return time.Duration(c.AccessTokenExpires) * time.Second }
func (c JWTConfig) RefreshTTL() time.Duration { return time.Duration(c.RefreshTokenExpires) * time.Second }

type PasswordConfig struct {
	BcryptCost     int  `yaml:"bcrypt_cost"`
	MinLength      int  `yaml:"min_length"`
	RequireUpper   bool `yaml:"require_upper"`
	RequireLower   bool `yaml:"require_lower"`
	RequireDigit   bool `yaml:"require_digit"`
	RequireSpecial bool `yaml:"require_special"`
}

type VerificationConfig struct {
	CodeLength     int `yaml:"code_length"`
	CodeExpires    int `yaml:"code_expires"`
	MaxAttempts    int `yaml:"max_attempts"`
	ResendCooldown int `yaml:"resend_cooldown"`
	SweepInterval  int `yaml:"sweep_interval"`
}

func (c VerificationConfig) CodeTTL() time.Duration {
	return time.Duration(c.CodeExpires) * time.Second
}

func (c VerificationConfig) Cooldown() time.Duration {
	return time.Duration(c.ResendCooldown) * time.Second
}

func (c VerificationConfig) SweepEvery() time.Duration {
	return time.Duration(c.SweepInterval) * time.Second
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
	} `yaml:"email"`
	SMS          SMSConfig          `yaml:"sms"`
	JWT          JWTConfig          `yaml:"jwt"`
	Password     PasswordConfig     `yaml:"password"`
	Verification VerificationConfig `yaml:"verification"`
}

func LoadConfig() *Config {
	f, err := os.Open("config/config.yaml")
	if err != nil {
		panic("Failed to open config.yaml: " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse config.yaml: " + err.Error())
	}

	cfg.applyDefaults()
	return &cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = "change-me-in-production"
	}
	if cfg.JWT.AccessTokenExpires <= 0 {
		cfg.JWT.AccessTokenExpires = 3600 // 1 hour
	}
	if cfg.JWT.RefreshTokenExpires <= 0 {
		cfg.JWT.RefreshTokenExpires = 2592000 // 30 days
	}
	if cfg.Password.BcryptCost == 0 {
		cfg.Password.BcryptCost = 12
	}
	if cfg.Password.MinLength == 0 {
		cfg.Password.MinLength = 8
	}
	if cfg.Verification.CodeLength == 0 {
		cfg.Verification.CodeLength = 6
	}
	if cfg.Verification.CodeExpires <= 0 {
		cfg.Verification.CodeExpires = 600 // 10 minutes
	}
	if cfg.Verification.MaxAttempts == 0 {
		cfg.Verification.MaxAttempts = 3
	}
	if cfg.Verification.ResendCooldown <= 0 {
		cfg.Verification.ResendCooldown = 60
	}
	if cfg.Verification.SweepInterval <= 0 {
		cfg.Verification.SweepInterval = 3600
	}
}
