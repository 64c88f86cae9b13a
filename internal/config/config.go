package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/oficinago/oficinago/internal/types"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	DynamoDB   DynamoDBConfig
	S3         S3Config
	Media      MediaConfig  `validate:"required"`
	Raster     RasterConfig `validate:"required"`
	WhatsApp   WhatsAppConfig
	Outbox     OutboxConfig `validate:"required"`
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

// DynamoDBConfig describes the document store holding service records. When
// InUse is false the application runs in local-only mode: records live in
// memory for the lifetime of the process and nothing is persisted remotely.
type DynamoDBConfig struct {
	InUse            bool
	Region           string
	ServiceTableName string
}

// S3Config describes the blob store for raw attachments. Disabled is a valid
// configuration: attachments then stay transient-only and the receipt caption
// carries no remote photo links.
type S3Config struct {
	Enabled                bool
	Region                 string
	AttachmentBucketConfig BucketConfig
}

type BucketConfig struct {
	Bucket                string
	KeyPrefix             string
	PresignExpiryDuration string
}

// MediaConfig bounds the normalizer's per-attachment fetch
type MediaConfig struct {
	FetchTimeout time.Duration `validate:"required"`
}

// RasterConfig tunes the headless-Chrome capture. Scale trades sharpness for
// memory; the capture extent is always pinned to the document's full
// scrollable size, never the viewport.
type RasterConfig struct {
	Scale          float64       `validate:"required,gt=0"`
	SettleDelay    time.Duration `validate:"required"`
	ImageTimeout   time.Duration `validate:"required"`
	CaptureTimeout time.Duration `validate:"required"`
	ChromePath     string
}

// WhatsAppConfig describes both the native share gateway (Cloud API) and the
// deep link fallback host. An empty APIToken means native share is
// unsupported and the cascade starts at the download tier.
type WhatsAppConfig struct {
	APIBaseURL    string
	APIToken      string
	PhoneNumberID string
	MaxShareFiles int
	DeepLinkHost  string `validate:"required"`
}

// OutboxConfig is where the download tier saves rendered receipts
type OutboxConfig struct {
	Dir string `validate:"required"`
}

func NewConfig() (*Configuration, error) {
	// Load .env if present; real env vars take precedence
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/oficinago")

	v.SetEnvPrefix("OFICINAGO")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", string(types.ModeLocal))
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", string(types.LogLevelInfo))
	v.SetDefault("media.fetchtimeout", 10*time.Second)
	v.SetDefault("raster.scale", 2.0)
	v.SetDefault("raster.settledelay", 500*time.Millisecond)
	v.SetDefault("raster.imagetimeout", 8*time.Second)
	v.SetDefault("raster.capturetimeout", 60*time.Second)
	v.SetDefault("whatsapp.deeplinkhost", "wa.me")
	v.SetDefault("whatsapp.maxsharefiles", 10)
	v.SetDefault("outbox.dir", "./outbox")
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development
// This is useful for running scripts or other non-web applications
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Media:      MediaConfig{FetchTimeout: 10 * time.Second},
		Raster: RasterConfig{
			Scale:          2.0,
			SettleDelay:    500 * time.Millisecond,
			ImageTimeout:   8 * time.Second,
			CaptureTimeout: 60 * time.Second,
		},
		WhatsApp: WhatsAppConfig{DeepLinkHost: "wa.me", MaxShareFiles: 10},
		Outbox:   OutboxConfig{Dir: "./outbox"},
	}
}
