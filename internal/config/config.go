// internal/config/config.go
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	RepositoryInMemory = "inmemory"
	RepositoryPostgres = "postgres"

	envPrefix = "TRACKER"
)

type Config struct {
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Database   DatabaseConfig   `yaml:"database" mapstructure:"database"`
	Logging    LoggingConfig    `yaml:"logging" mapstructure:"logging"`
	Repository RepositoryConfig `yaml:"repository" mapstructure:"repository"`
	Worker     WorkerConfig     `yaml:"worker" mapstructure:"worker"`
}

type ServerConfig struct {
	Port            string        `yaml:"port" mapstructure:"port"`
	Host            string        `yaml:"host" mapstructure:"host"`
	ReadTimeout     time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
	RateLimit       int           `yaml:"rate_limit" mapstructure:"rate_limit"` // запросов в минуту
	CORSOrigins     []string      `yaml:"cors_origins" mapstructure:"cors_origins"`
}

type DatabaseConfig struct {
	URL             string        `yaml:"url" mapstructure:"url"`
	MaxConnections  int           `yaml:"max_connections" mapstructure:"max_connections"`
	MinConnections  int           `yaml:"min_connections" mapstructure:"min_connections"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`
	ConnectAttempts int           `yaml:"connect_attempts" mapstructure:"connect_attempts"`
	SkipMigrations  bool          `yaml:"skip_migrations" mapstructure:"skip_migrations"`
}

type LoggingConfig struct {
	Development bool `yaml:"development" mapstructure:"development"`
}

type RepositoryConfig struct {
	Type    string `yaml:"type" mapstructure:"type"`         // "postgres" или "inmemory"
	DataDir string `yaml:"data_dir" mapstructure:"data_dir"` // пусто - без снапшотов на диск
	Seed    bool   `yaml:"seed" mapstructure:"seed"`
}

type WorkerConfig struct {
	Disabled bool          `yaml:"disabled" mapstructure:"disabled"`
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// Default - значения по умолчанию. bool поля по умолчанию false,
// иначе mergo не даст выключить их из файла.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            "8080",
			Host:            "0.0.0.0",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimit:       100,
			CORSOrigins:     []string{"*"},
		},
		Database: DatabaseConfig{
			MaxConnections:  10,
			MinConnections:  2,
			IdleTimeout:     5 * time.Minute,
			ConnectAttempts: 5,
		},
		Repository: RepositoryConfig{
			Type: RepositoryInMemory,
		},
		Worker: WorkerConfig{
			Interval: time.Minute,
		},
	}
}

// Flags описывает флаги командной строки, которые понимает Load
func Flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", "", "путь к config.yml")
	fs.Bool("print-config", false, "вывести итоговую конфигурацию и выйти")
	fs.String("port", "", "порт HTTP сервера")
	fs.String("repository", "", "тип хранилища: inmemory или postgres")
	fs.String("data-dir", "", "каталог JSON снапшотов хранилища в памяти")
	fs.Bool("seed", false, "заполнить пустое хранилище примерами")
	return fs
}

// Load собирает конфигурацию: значения по умолчанию, затем файл, затем
// переменные окружения TRACKER_*, затем явно переданные флаги.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	defaults, err := yaml.Marshal(Default())
	if err != nil {
		return nil, fmt.Errorf("значения по умолчанию: %w", err)
	}
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return nil, fmt.Errorf("значения по умолчанию: %w", err)
	}

	path := ""
	if fs != nil {
		path, _ = fs.GetString("config")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}
	if err := v.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("чтение конфига: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for key, flag := range map[string]string{
			"server.port":         "port",
			"repository.type":     "repository",
			"repository.data_dir": "data-dir",
			"repository.seed":     "seed",
		} {
			if f := fs.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("флаг %s: %w", flag, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга конфига: %w", err)
	}
	if err := cfg.ApplyDefaults(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults заполняет пустые поля значениями из Default
func (c *Config) ApplyDefaults() error {
	if err := mergo.Merge(c, Default()); err != nil {
		return fmt.Errorf("значения по умолчанию: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Repository.Type {
	case RepositoryInMemory:
	case RepositoryPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("database.url обязателен для хранилища %q", RepositoryPostgres)
		}
	default:
		return fmt.Errorf("неизвестный тип хранилища %q", c.Repository.Type)
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit не может быть отрицательным")
	}
	if c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("database.min_connections больше max_connections")
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return net.JoinHostPort(c.Server.Host, c.Server.Port)
}

// Dump пишет конфигурацию в YAML
func (c *Config) Dump(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("вывод конфига: %w", err)
	}
	return enc.Close()
}
