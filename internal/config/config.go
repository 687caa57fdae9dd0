// internal/config/config.go
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Storage StorageConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	LogLevel       string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

// StorageConfig holds the fixed object-storage settings. Endpoint and bucket
// come from configuration only, never from a request.
type StorageConfig struct {
	AccessKey string
	SecretKey string
	Region    string
	Bucket    string
	Endpoint  string
	UseSSL    bool
}

// Load reads configuration from a .env file (if present) and the environment.
// It fails when the storage credentials are absent: the service must not start
// without them.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Set default values
	viper.SetDefault("SERVER_PORT", "8000")
	viper.SetDefault("SERVER_MODE", "release")
	viper.SetDefault("SERVER_READ_TIMEOUT", 60)
	viper.SetDefault("SERVER_WRITE_TIMEOUT", 60)
	viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("AWS_REGION", "eu-north-1")
	viper.SetDefault("S3_BUCKET_NAME", "study2material")
	viper.SetDefault("S3_USE_SSL", true)

	// Read from environment variables
	viper.AutomaticEnv()

	accessKey := viper.GetString("AWS_ACCESS_KEY_ID")
	secretKey := viper.GetString("AWS_SECRET_ACCESS_KEY")
	if accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set")
	}

	region := viper.GetString("AWS_REGION")
	endpoint := viper.GetString("S3_ENDPOINT")
	if endpoint == "" {
		// Regional AWS endpoint unless overridden (MinIO, cmd/localstore, ...).
		endpoint = fmt.Sprintf("s3.%s.amazonaws.com", region)
	}

	return &Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			Mode:           viper.GetString("SERVER_MODE"),
			LogLevel:       viper.GetString("LOG_LEVEL"),
			ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
			WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
			AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
		},
		Storage: StorageConfig{
			AccessKey: accessKey,
			SecretKey: secretKey,
			Region:    region,
			Bucket:    viper.GetString("S3_BUCKET_NAME"),
			Endpoint:  endpoint,
			UseSSL:    viper.GetBool("S3_USE_SSL"),
		},
	}, nil
}
