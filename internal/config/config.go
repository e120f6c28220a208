package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Providers struct {
		Geolocation struct {
			Endpoint string `yaml:"endpoint"`
			Token    string `yaml:"token"`
		} `yaml:"geolocation"`

		Registration struct {
			Endpoint string `yaml:"endpoint"`
		} `yaml:"registration"`

		SafeBrowsing struct {
			Endpoint      string `yaml:"endpoint"`
			APIKey        string `yaml:"apiKey"`
			ClientID      string `yaml:"clientId"`
			ClientVersion string `yaml:"clientVersion"`
		} `yaml:"safebrowsing"`

		VirusTotal struct {
			Endpoint         string `yaml:"endpoint"`
			APIKey           string `yaml:"apiKey"`
			PollDelaySeconds int    `yaml:"pollDelaySeconds"`
		} `yaml:"virustotal"`

		OCR struct {
			Endpoint string `yaml:"endpoint"`
			APIKey   string `yaml:"apiKey"`
		} `yaml:"ocr"`

		OpenAI struct {
			APIKey string `yaml:"apiKey"`
			Model  string `yaml:"model"`
		} `yaml:"openai"`
	} `yaml:"providers"`

	Checks struct {
		ReachabilityTimeoutSeconds int `yaml:"reachabilityTimeoutSeconds"`
	} `yaml:"checks"`

	Client struct {
		BaseURL           string `yaml:"baseUrl"`
		RetryCount        int    `yaml:"retryCount"`
		RetryDelaySeconds int    `yaml:"retryDelaySeconds"`
		StorePath         string `yaml:"storePath"`
	} `yaml:"client"`
}

// Load baca file config.yaml
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns a config with every default applied, for callers that run
// without a config file (the dashboard).
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 3000
	}
	if c.Providers.Geolocation.Endpoint == "" {
		c.Providers.Geolocation.Endpoint = "https://ipinfo.io"
	}
	if c.Providers.Registration.Endpoint == "" {
		c.Providers.Registration.Endpoint = "https://rdap.org"
	}
	if c.Providers.SafeBrowsing.Endpoint == "" {
		c.Providers.SafeBrowsing.Endpoint = "https://safebrowsing.googleapis.com/v4/threatMatches:find"
	}
	if c.Providers.SafeBrowsing.ClientID == "" {
		c.Providers.SafeBrowsing.ClientID = "cryvora"
	}
	if c.Providers.SafeBrowsing.ClientVersion == "" {
		c.Providers.SafeBrowsing.ClientVersion = "1.0"
	}
	if c.Providers.VirusTotal.Endpoint == "" {
		c.Providers.VirusTotal.Endpoint = "https://www.virustotal.com/api/v3"
	}
	if c.Providers.VirusTotal.PollDelaySeconds == 0 {
		c.Providers.VirusTotal.PollDelaySeconds = 10
	}
	if c.Providers.OCR.Endpoint == "" {
		c.Providers.OCR.Endpoint = "https://api.ocr.space/parse/image"
	}
	if c.Checks.ReachabilityTimeoutSeconds == 0 {
		c.Checks.ReachabilityTimeoutSeconds = 5
	}
	if c.Client.BaseURL == "" {
		c.Client.BaseURL = "http://localhost:3000"
	}
	if c.Client.RetryCount == 0 {
		c.Client.RetryCount = 1
	}
	if c.Client.RetryDelaySeconds == 0 {
		c.Client.RetryDelaySeconds = 2
	}
}

// DeepScanDelay jeda sebelum poll hasil VirusTotal
func (c *Config) DeepScanDelay() time.Duration {
	return time.Duration(c.Providers.VirusTotal.PollDelaySeconds) * time.Second
}

// ReachabilityTimeout bound untuk plain fetch
func (c *Config) ReachabilityTimeout() time.Duration {
	return time.Duration(c.Checks.ReachabilityTimeoutSeconds) * time.Second
}

// RetryDelay jeda sebelum retry client
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.Client.RetryDelaySeconds) * time.Second
}
