/*
Copyright 2024 Blnk Finance Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package config

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"strings"
	"sync/atomic"

	"github.com/kelseyhightower/envconfig"
	"github.com/wacul/ptr"

	"github.com/sirupsen/logrus"
)

const (
	DEFAULT_PORT             = "5005"
	DEFAULT_AMOUNT_PRECISION = 2
	DEFAULT_ENGINE_TIMEOUT   = 30
)

var ConfigStore atomic.Value

type ServerConfig struct {
	SSL       bool   `json:"ssl" envconfig:"FXRECON_SERVER_SSL"`
	Secure    bool   `json:"secure" envconfig:"FXRECON_SERVER_SECURE"`
	SecretKey string `json:"secret_key" envconfig:"FXRECON_SERVER_SECRET_KEY"`
	Domain    string `json:"domain" envconfig:"FXRECON_SERVER_SSL_DOMAIN"`
	Email     string `json:"ssl_email" envconfig:"FXRECON_SERVER_SSL_EMAIL"`
	Port      string `json:"port" envconfig:"FXRECON_SERVER_PORT"`
}

type DataSourceConfig struct {
	Dns string `json:"dns" envconfig:"FXRECON_DATA_SOURCE_DNS"`
}

type RedisConfig struct {
	Dns           string `json:"dns" envconfig:"FXRECON_REDIS_DNS"`
	SkipTLSVerify bool   `json:"skip_tls_verify" envconfig:"FXRECON_REDIS_SKIP_TLS_VERIFY"`
}

// EngineConfig points at the accounting engine that prepares exchange difference moves.
type EngineConfig struct {
	Url           string `json:"url" envconfig:"FXRECON_ENGINE_URL"`
	Timeout       int    `json:"timeout" envconfig:"FXRECON_ENGINE_TIMEOUT"`
	Authorization string `json:"authorization" envconfig:"FXRECON_ENGINE_AUTHORIZATION"`
}

type AnalyticConfig struct {
	// AmountPrecision is the number of decimals amounts are normalised to before matching.
	// It must equal the company currency's decimal places: 3 for KWD, BHD or JOD, since
	// at 2 distinct amounts such as 1.231 and 1.234 share a signature.
	AmountPrecision *int `json:"amount_precision" envconfig:"FXRECON_ANALYTIC_AMOUNT_PRECISION"`
}

type RateLimitConfig struct {
	RequestsPerSecond  *float64 `json:"requests_per_second" envconfig:"FXRECON_RATE_LIMIT_RPS"`
	Burst              *int     `json:"burst" envconfig:"FXRECON_RATE_LIMIT_BURST"`
	CleanupIntervalSec *int     `json:"cleanup_interval_sec" envconfig:"FXRECON_RATE_LIMIT_CLEANUP_INTERVAL_SEC"`
}

type SlackWebhook struct {
	WebhookUrl string `json:"webhook_url" envconfig:"FXRECON_SLACK_WEBHOOK_URL"`
}

type NotificationConfig struct {
	Slack SlackWebhook `json:"slack"`
}

type TracingConfig struct {
	Enabled  bool   `json:"enabled" envconfig:"FXRECON_TRACING_ENABLED"`
	Endpoint string `json:"endpoint" envconfig:"FXRECON_TRACING_ENDPOINT"`
	Headers  string `json:"headers" envconfig:"FXRECON_TRACING_HEADERS"`
}

type Configuration struct {
	ProjectName  string             `json:"project_name" envconfig:"FXRECON_PROJECT_NAME"`
	Server       ServerConfig       `json:"server"`
	DataSource   DataSourceConfig   `json:"data_source"`
	Redis        RedisConfig        `json:"redis"`
	Engine       EngineConfig       `json:"engine"`
	Analytic     AnalyticConfig     `json:"analytic"`
	RateLimit    RateLimitConfig    `json:"rate_limit"`
	Tracing      TracingConfig      `json:"tracing"`
	Notification NotificationConfig `json:"notification"`
}

func loadConfigFromFile(file string) error {
	var cnf Configuration
	_, err := os.Stat(file)
	if err == nil {
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		defer f.Close()
		err = json.NewDecoder(f).Decode(&cnf)
		if err != nil {
			return err
		}

	} else if errors.Is(err, os.ErrNotExist) {
		log.Println("config json not passed, will use env variables")
	}

	// override config from environment variables
	err = envconfig.Process("fxrecon", &cnf)
	if err != nil {
		return err
	}

	err = cnf.validateAndAddDefaults()
	if err != nil {
		return err
	}

	ConfigStore.Store(&cnf)
	return err
}

func InitConfig(configFile string) error {
	logger()
	return loadConfigFromFile(configFile)
}

func Fetch() (*Configuration, error) {
	config := ConfigStore.Load()
	c, ok := config.(*Configuration)
	if !ok {
		return nil, errors.New("config not loaded from file. Create a json file called fxrecon.json with your config ❌")
	}
	return c, nil
}

// AmountPrecision returns the configured signature precision, falling back to the default.
func (cnf *Configuration) AmountPrecision() int32 {
	if cnf == nil || cnf.Analytic.AmountPrecision == nil {
		return DEFAULT_AMOUNT_PRECISION
	}
	return int32(*cnf.Analytic.AmountPrecision)
}

func (cnf *Configuration) validateAndAddDefaults() error {
	if cnf.ProjectName == "" {
		log.Println("Warning: Project name is empty. Setting a default name.")
		cnf.ProjectName = "FX Reconciliation"
	}

	if cnf.DataSource.Dns == "" {
		log.Println("Error: Data source DNS is empty. It's a required field.")
		return errors.New("data source DNS is required")
	}

	// Trim white spaces from fields
	cnf.ProjectName = strings.TrimSpace(cnf.ProjectName)
	cnf.Server.Port = strings.TrimSpace(cnf.Server.Port)
	cnf.DataSource.Dns = strings.TrimSpace(cnf.DataSource.Dns)
	cnf.Redis.Dns = strings.TrimSpace(cnf.Redis.Dns)
	cnf.Engine.Url = strings.TrimRight(strings.TrimSpace(cnf.Engine.Url), "/")

	if cnf.Redis.Dns == "" {
		log.Println("Warning: Redis DNS is empty. Account lookups will not be cached.")
	}

	// Set default value for Port if it's empty
	if cnf.Server.Port == "" {
		cnf.Server.Port = DEFAULT_PORT
		log.Printf("Warning: Port not specified in config. Setting default port: %s", DEFAULT_PORT)
	}

	if cnf.Engine.Timeout <= 0 {
		cnf.Engine.Timeout = DEFAULT_ENGINE_TIMEOUT
	}

	if cnf.Analytic.AmountPrecision == nil {
		cnf.Analytic.AmountPrecision = ptr.Int(DEFAULT_AMOUNT_PRECISION)
	} else if *cnf.Analytic.AmountPrecision < 0 {
		return errors.New("analytic amount precision cannot be negative")
	}

	// Rate limiting is disabled by default (when both RPS and Burst are nil)
	if cnf.RateLimit.RequestsPerSecond != nil && cnf.RateLimit.Burst == nil {
		defaultBurst := 2 * int(*cnf.RateLimit.RequestsPerSecond)
		cnf.RateLimit.Burst = &defaultBurst
		log.Printf("Warning: Rate limit burst not specified. Setting default value: %d", defaultBurst)
	}
	if cnf.RateLimit.RequestsPerSecond == nil && cnf.RateLimit.Burst != nil {
		cnf.RateLimit.RequestsPerSecond = ptr.Float64(float64(*cnf.RateLimit.Burst) / 2)
		log.Printf("Warning: Rate limit RPS not specified. Setting default value: %.2f", *cnf.RateLimit.RequestsPerSecond)
	}

	// Set default cleanup interval if not specified
	if cnf.RateLimit.CleanupIntervalSec == nil {
		cnf.RateLimit.CleanupIntervalSec = ptr.Int(10800) // 3 hours in seconds
	}

	return nil
}

// SetOtlpExporterEnvs exports the tracing settings in the variables the OTLP exporter reads.
func SetOtlpExporterEnvs() error {
	cnf, err := Fetch()
	if err != nil {
		return err
	}
	if cnf.Tracing.Endpoint != "" {
		if err := os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", cnf.Tracing.Endpoint); err != nil {
			return err
		}
	}
	if cnf.Tracing.Headers != "" {
		if err := os.Setenv("OTEL_EXPORTER_OTLP_HEADERS", cnf.Tracing.Headers); err != nil {
			return err
		}
	}
	return nil
}

// MockConfig sets a mock configuration for testing purposes.
func MockConfig(mockConfig *Configuration) {
	ConfigStore.Store(mockConfig)
}

func logger() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(logger.Writer())
}
