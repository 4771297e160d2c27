package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port      int    `yaml:"port"`
		SecretKey string `yaml:"secretKey"`
	} `yaml:"server"`

	CORS struct {
		Origins []string `yaml:"origins"`
	} `yaml:"cors"`

	Database struct {
		Driver   string `yaml:"driver"` // postgres or mysql
		URL      string `yaml:"url"`    // takes precedence over host parts
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
	} `yaml:"database"`

	DeepSeek struct {
		APIKey  string `yaml:"apiKey"`
		BaseURL string `yaml:"baseURL"`
		Model   string `yaml:"model"`
	} `yaml:"deepseek"`

	Minio struct {
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`
}

// Load reads config.yaml and applies environment overrides. A missing file is
// not an error: the service can run entirely from the environment.
func Load(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}
	cfg.applyEnv()
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "postgres"
	}
	if len(cfg.CORS.Origins) == 0 {
		cfg.CORS.Origins = []string{"*"}
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		c.Server.SecretKey = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.CORS.Origins = origins
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("DEEPSEEK_API_KEY"); v != "" {
		c.DeepSeek.APIKey = v
	}
}

// DatabaseConfigured reports whether any store settings are present.
func (c *Config) DatabaseConfigured() bool {
	return c.Database.URL != "" || c.Database.Host != ""
}

// DeepSeekConfigured reports whether the model API key is present.
func (c *Config) DeepSeekConfigured() bool {
	return c.DeepSeek.APIKey != ""
}

// MinioConfigured reports whether the archive bucket settings are present.
func (c *Config) MinioConfigured() bool {
	return c.Minio.Endpoint != "" && c.Minio.BucketName != ""
}

// PostgresDSN builds the lib/pq connection string. Hosted-store URLs get the
// legacy scheme fixed and sslmode forced, matching what the managed provider
// expects.
func (c *Config) PostgresDSN() string {
	if c.Database.URL != "" {
		url := c.Database.URL
		if strings.HasPrefix(url, "postgres://") {
			url = "postgresql://" + strings.TrimPrefix(url, "postgres://")
		}
		if !strings.Contains(url, "sslmode=") {
			sep := "?"
			if strings.Contains(url, "?") {
				sep = "&"
			}
			url += sep + "sslmode=require"
		}
		return url
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=require",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

// MySQLDSN builds the go-sql-driver DSN.
func (c *Config) MySQLDSN() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}
