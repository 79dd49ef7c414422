package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	API    APIConfig    `mapstructure:"api"    validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port"             validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level"        validate:"required,oneof=debug info warn error"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`
	CORS            CORSConfig    `mapstructure:"cors"`
}

// CORSConfig lists the origins browsers may call the API from.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"required,min=1,dive,required"`
}

// APIConfig contains request handling settings.
type APIConfig struct {
	DefaultPageLimit int `mapstructure:"default_page_limit" validate:"required,min=1,ltefield=MaxPageLimit"`
	MaxPageLimit     int `mapstructure:"max_page_limit"     validate:"required,min=1,max=100"`
}
