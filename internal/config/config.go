package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

type Config struct {
	LogLevel  string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogOutput string `yaml:"log-output" env:"LOG_OUTPUT" env-default:"stderr"`
	Storage   string `yaml:"storage" env:"STORAGE" env-default:"memory"`
	Redis     Redis  `yaml:"redis"`
	Game      Game   `yaml:"game"`
}

type Redis struct {
	Host       string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port       string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	SessionTTL time.Duration `yaml:"session-ttl" env:"REDIS_SESSION_TTL" env-default:"24h"`
}

type Game struct {
	StartingMark     string        `yaml:"starting-mark" env:"GAME_STARTING_MARK" env-default:"X"`
	MessageQueueSize int           `yaml:"message-queue-size" env-default:"4"`
	ThinkDelay       time.Duration `yaml:"think-delay" env-default:"200ms"`
	Difficulty       Difficulty    `yaml:"difficulty"`
}

// Difficulty maps the menu presets to search depths. 0 plays randomly.
type Difficulty struct {
	Easy   int `yaml:"easy" env-default:"0"`
	Medium int `yaml:"medium" env-default:"2"`
	Hard   int `yaml:"hard" env-default:"9"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	if that.Host == "" || that.Port == "" {
		return ""
	}

	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
