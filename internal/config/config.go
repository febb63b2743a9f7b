package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string     `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string     `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Redis      Redis      `yaml:"redis"`
	Match      Match      `yaml:"match"`
	Tournament Tournament `yaml:"tournament"`
}

type Redis struct {
	Enabled bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host    string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Match struct {
	Width     int           `yaml:"width" env:"MATCH_WIDTH" env-default:"7"`
	Height    int           `yaml:"height" env:"MATCH_HEIGHT" env-default:"7"`
	TimeLimit time.Duration `yaml:"time-limit" env:"MATCH_TIME_LIMIT" env-default:"150ms"`
	Player1   string        `yaml:"player-1" env:"MATCH_PLAYER_1" env-default:"custom"`
	Player2   string        `yaml:"player-2" env:"MATCH_PLAYER_2" env-default:"ab_iterative"`
	Seed      int64         `yaml:"seed" env:"MATCH_SEED" env-default:"1"`
}

type Tournament struct {
	Players     []string `yaml:"players" env:"TOURNAMENT_PLAYERS" env-default:"random,minimax,alphabeta,ab_iterative,custom"`
	Rounds      int      `yaml:"rounds" env:"TOURNAMENT_ROUNDS" env-default:"5"`
	Concurrency int      `yaml:"concurrency" env:"TOURNAMENT_CONCURRENCY" env-default:"4"`
}

// MustLoad - load all configurations in config.yml file, environment
// variables override it.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load - reads the config file when it exists, otherwise only the environment.
func Load(path string) (*Config, error) {
	config := &Config{}

	if path == "" {
		if err := cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read environment: %w", err)
		}
		return config, nil
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
