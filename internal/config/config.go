package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"     validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database"   validate:"required"`
	Auth       AuthConfig       `mapstructure:"auth"       validate:"required"`
	Motivation MotivationConfig `mapstructure:"motivation" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	BcryptCost           int    `mapstructure:"bcrypt_cost"            validate:"omitempty,gte=4,lte=31"`
}

// MotivationConfig contains the settings for the motivational-message
// generation service. The API key is required only when the service is
// enabled; when disabled the application serves the static fallback message
// and never touches the network.
type MotivationConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	APIKey            string `mapstructure:"api_key"             validate:"required_if=Enabled true"`
	BaseURL           string `mapstructure:"base_url"            validate:"required,url"`
	Model             string `mapstructure:"model"               validate:"required"`
	FallbackModel     string `mapstructure:"fallback_model"      validate:"required"`
	TimeoutSeconds    int    `mapstructure:"timeout_seconds"     validate:"required,gt=0"`
	MaxRetries        int    `mapstructure:"max_retries"         validate:"required,gt=0"`
	RetryDelaySeconds int    `mapstructure:"retry_delay_seconds" validate:"required,gt=0"`
	CacheTTLMinutes   int    `mapstructure:"cache_ttl_minutes"   validate:"required,gt=0"`
	SiteURL           string `mapstructure:"site_url"`
	SiteName          string `mapstructure:"site_name"`
}
