/*
Copyright 2025 Careview Authors.

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
	"github.com/sirupsen/logrus"
	"github.com/wacul/ptr"
)

const (
	DEFAULT_PORT = "5400"

	// DEFAULT_ROW_LIMIT caps the upcoming rows a dashboard displays.
	DEFAULT_ROW_LIMIT = 5
)

var ConfigStore atomic.Value

type ServerConfig struct {
	SSL       bool   `json:"ssl" envconfig:"CAREVIEW_SERVER_SSL"`
	Secure    bool   `json:"secure" envconfig:"CAREVIEW_SERVER_SECURE"`
	SecretKey string `json:"secret_key" envconfig:"CAREVIEW_SERVER_SECRET_KEY"`
	Domain    string `json:"domain" envconfig:"CAREVIEW_SERVER_SSL_DOMAIN"`
	Email     string `json:"ssl_email" envconfig:"CAREVIEW_SERVER_SSL_EMAIL"`
	Port      string `json:"port" envconfig:"CAREVIEW_SERVER_PORT"`
}

// SourceConfig points at the records backend the engine fetches raw
// collections from.
type SourceConfig struct {
	BaseUrl     string `json:"base_url" envconfig:"CAREVIEW_SOURCE_BASE_URL"`
	TimeoutSec  int    `json:"timeout_sec" envconfig:"CAREVIEW_SOURCE_TIMEOUT_SEC"`
	CacheTTLSec int    `json:"cache_ttl_sec" envconfig:"CAREVIEW_SOURCE_CACHE_TTL_SEC"`
}

type RedisConfig struct {
	Dns string `json:"dns" envconfig:"CAREVIEW_REDIS_DNS"`
}

type DisplayConfig struct {
	UpcomingLimit int `json:"upcoming_limit" envconfig:"CAREVIEW_DISPLAY_UPCOMING_LIMIT"`
}

type RateLimitConfig struct {
	RequestsPerSecond  *float64 `json:"requests_per_second" envconfig:"CAREVIEW_RATE_LIMIT_RPS"`
	Burst              *int     `json:"burst" envconfig:"CAREVIEW_RATE_LIMIT_BURST"`
	CleanupIntervalSec *int     `json:"cleanup_interval_sec" envconfig:"CAREVIEW_RATE_LIMIT_CLEANUP_INTERVAL_SEC"`
}

type SlackWebhook struct {
	WebhookUrl string `json:"webhook_url"`
}

type Notification struct {
	Slack SlackWebhook `json:"slack"`
}

type Configuration struct {
	ProjectName  string          `json:"project_name" envconfig:"CAREVIEW_PROJECT_NAME"`
	TelemetryKey string          `json:"telemetry_key" envconfig:"CAREVIEW_TELEMETRY_KEY"`
	Server       ServerConfig    `json:"server"`
	Source       SourceConfig    `json:"source"`
	Redis        RedisConfig     `json:"redis"`
	Display      DisplayConfig   `json:"display"`
	Notification Notification    `json:"notification"`
	RateLimit    RateLimitConfig `json:"rate_limit"`
}

func loadConfigFromFile(file string) error {
	var cnf Configuration
	_, err := os.Stat(file)
	if err == nil {
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		err = json.NewDecoder(f).Decode(&cnf)
		if err != nil {
			return err
		}
	} else if errors.Is(err, os.ErrNotExist) {
		log.Println("config json not passed, will use env variables")
	}

	// override config from environment variables
	err = envconfig.Process("careview", &cnf)
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
		return nil, errors.New("config not loaded from file. Create a json file called careview.json with your config ❌")
	}
	return c, nil
}

func (cnf *Configuration) validateAndAddDefaults() error {
	if cnf.ProjectName == "" {
		log.Println("Warning: Project name is empty. Setting a default name.")
		cnf.ProjectName = "Careview Server"
	}

	if cnf.Source.BaseUrl == "" {
		log.Println("Error: Source base URL is empty. It's a required field.")
		return errors.New("source base URL is required")
	}

	// Trim white spaces from fields
	cnf.ProjectName = strings.TrimSpace(cnf.ProjectName)
	cnf.Server.Port = strings.TrimSpace(cnf.Server.Port)
	cnf.Source.BaseUrl = strings.TrimSpace(cnf.Source.BaseUrl)
	cnf.Redis.Dns = strings.TrimSpace(cnf.Redis.Dns)

	// Set default value for Port if it's empty
	if cnf.Server.Port == "" {
		cnf.Server.Port = DEFAULT_PORT
		log.Printf("Warning: Port not specified in config. Setting default port: %s", DEFAULT_PORT)
	}

	if cnf.Source.TimeoutSec <= 0 {
		cnf.Source.TimeoutSec = 15
	}

	if cnf.Display.UpcomingLimit <= 0 {
		cnf.Display.UpcomingLimit = DEFAULT_ROW_LIMIT
	}

	// Rate limiting is disabled by default (when both RPS and Burst are nil)
	if cnf.RateLimit.RequestsPerSecond != nil && cnf.RateLimit.Burst == nil {
		cnf.RateLimit.Burst = ptr.Int(2 * int(*cnf.RateLimit.RequestsPerSecond))
		log.Printf("Warning: Rate limit burst not specified. Setting default value: %d", *cnf.RateLimit.Burst)
	}
	if cnf.RateLimit.RequestsPerSecond == nil && cnf.RateLimit.Burst != nil {
		cnf.RateLimit.RequestsPerSecond = ptr.Float64(float64(*cnf.RateLimit.Burst) / 2)
		log.Printf("Warning: Rate limit RPS not specified. Setting default value: %.2f", *cnf.RateLimit.RequestsPerSecond)
	}
	if cnf.RateLimit.CleanupIntervalSec == nil {
		cnf.RateLimit.CleanupIntervalSec = ptr.Int(10800) // 3 hours in seconds
	}

	return nil
}

// MockConfig sets a mock configuration for testing purposes.
func MockConfig(mockConfig *Configuration) {
	mockConfig.applyTestDefaults()
	ConfigStore.Store(mockConfig)
}

func (cnf *Configuration) applyTestDefaults() {
	if cnf.Server.Port == "" {
		cnf.Server.Port = DEFAULT_PORT
	}
	if cnf.Display.UpcomingLimit <= 0 {
		cnf.Display.UpcomingLimit = DEFAULT_ROW_LIMIT
	}
	if cnf.Source.TimeoutSec <= 0 {
		cnf.Source.TimeoutSec = 15
	}
}

func logger() {
	logger := logrus.New()
	log.SetOutput(logger.Writer())
}
