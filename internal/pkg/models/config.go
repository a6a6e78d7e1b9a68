package models

// Config holds all configuration for the application
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Token    TokenConfig
	OTP      OTPConfig
	SMS      SMSConfig
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string `json:"name" mapstructure:"name"`
	Environment string `json:"environment" mapstructure:"environment"`
	Debug       bool   `json:"debug" mapstructure:"debug"`
	Version     string `json:"version" mapstructure:"version"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host            string `json:"host" mapstructure:"host"`
	Port            int    `json:"port" mapstructure:"port"`
	ReadTimeout     int    `json:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    int    `json:"write_timeout" mapstructure:"write_timeout"`
	ShutdownTimeout int    `json:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host      string `json:"host" mapstructure:"host"`
	Port      int    `json:"port" mapstructure:"port"`
	Username  string `json:"username" mapstructure:"username"`
	Password  string `json:"password" mapstructure:"password"`
	Database  string `json:"database" mapstructure:"database"`
	SSLMode   string `json:"ssl_mode" mapstructure:"ssl_mode"`
	MaxConns  int    `json:"max_conns" mapstructure:"max_conns"`
	IdleConns int    `json:"idle_conns" mapstructure:"idle_conns"`
}

// RedisConfig holds redis connection configuration
type RedisConfig struct {
	Host     string `json:"host" mapstructure:"host"`
	Port     int    `json:"port" mapstructure:"port"`
	Password string `json:"password" mapstructure:"password"`
	DB       int    `json:"db" mapstructure:"db"`
	PoolSize int    `json:"pool_size" mapstructure:"pool_size"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level    string `json:"level" mapstructure:"level"`
	FilePath string `json:"file_path" mapstructure:"file_path"`
}

// TokenConfig holds the encrypted bearer token settings.
// Secret is the process-wide encryption secret; when empty a random
// secret is generated at startup and issued tokens do not survive a
// process restart.
type TokenConfig struct {
	Secret        string `json:"-" mapstructure:"secret"`
	ExpirySeconds int64  `json:"expiry_seconds" mapstructure:"expiry_seconds"`
}

// OTPConfig holds the OTP login settings
type OTPConfig struct {
	Enabled    bool  `json:"enabled" mapstructure:"enabled"`
	CodeLength int   `json:"code_length" mapstructure:"code_length"`
	TTLSeconds int64 `json:"ttl_seconds" mapstructure:"ttl_seconds"`
}

// SMSConfig holds the SMS provider gateway settings
type SMSConfig struct {
	ProviderURL string `json:"provider_url" mapstructure:"provider_url"`
	APIKey      string `json:"-" mapstructure:"api_key"`
	SenderID    string `json:"sender_id" mapstructure:"sender_id"`
	TimeoutSecs int    `json:"timeout_secs" mapstructure:"timeout_secs"`
}
