package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/suchimauz/dental-slots-engine/internal/core/json_types"
)

type Environment string

const (
	EnvLocal      Environment = "local"
	EnvDev        Environment = "dev"
	EnvStage      Environment = "stage"
	EnvProduction Environment = "production"
)

type ConfigBasicClient struct {
	Username string
	Password string
}

type Config struct {
	App struct {
		Version  string      `env:"APP_VERSION" envDefault:"local"`
		Env      Environment `env:"APP_ENV" envDefault:"local"`
		Timezone string      `env:"APP_TIMEZONE" envDefault:"Europe/Moscow"`
	}

	HTTP struct {
		Port string `env:"HTTP_SERVER_PORT" envDefault:"8080"`
		Host string `env:"HTTP_SERVER_HOST" envDefault:"localhost"`
	}

	Clinic struct {
		URL      string `env:"CLINIC_API_URL"`
		Username string `env:"CLINIC_API_USERNAME"`
		Password string `env:"CLINIC_API_PASSWORD"`
	}

	Auth struct {
		BasicClientsString string `env:"AUTH_BASIC_CLIENTS" envDefault:"slots_engine:slots_engine"`
		BasicClients       []ConfigBasicClient
	}

	// Engine - параметры генерации слотов
	// Значения по умолчанию совпадают с принятыми в клинике:
	// слот 30 минут, буфер записи 30 минут, рабочий день 09:00-18:00
	Engine struct {
		SlotDurationMinutes  int    `env:"ENGINE_SLOT_DURATION_MINUTES" envDefault:"30"`
		BookingBufferMinutes int    `env:"ENGINE_BOOKING_BUFFER_MINUTES" envDefault:"30"`
		WorkDayStartString   string `env:"ENGINE_WORKDAY_START" envDefault:"09:00"`
		WorkDayEndString     string `env:"ENGINE_WORKDAY_END" envDefault:"18:00"`
		WorkDayStart         json_types.TimeOfDay
		WorkDayEnd           json_types.TimeOfDay
	}

	RabbitMQ struct {
		Enabled  bool   `env:"RABBITMQ_ENABLED"`
		URL      string `env:"RABBITMQ_URL"`
		Queue    string `env:"RABBITMQ_QUEUE" envDefault:"clinic.slots-engine.appointment"`
		Exchange string `env:"RABBITMQ_EXCHANGE" envDefault:"clinic.events"`
		Bind     string `env:"RABBITMQ_BIND" envDefault:"clinic.slots-engine.appointment.*"`
	}

	Cache struct {
		Enabled       bool `env:"CACHE_ENABLED"`
		SnapshotsSize int  `env:"CACHE_SNAPSHOTS_SIZE" envDefault:"1000"`
	}
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Приведение окружения к нижнему регистру для унификации
	cfg.App.Env = Environment(strings.ToLower(string(cfg.App.Env)))

	// Разбор клиентов basic-авторизации
	if cfg.Auth.BasicClients == nil {
		cfg.Auth.BasicClients = []ConfigBasicClient{}
	}
	clientPairs := strings.Split(cfg.Auth.BasicClientsString, ",")
	for _, pair := range clientPairs {
		parts := strings.Split(pair, ":")
		if len(parts) == 2 {
			cfg.Auth.BasicClients = append(cfg.Auth.BasicClients, ConfigBasicClient{
				Username: parts[0],
				Password: parts[1],
			})
		}
	}

	// Разбор границ рабочего дня
	workDayStart, err := json_types.ParseTimeOfDay(cfg.Engine.WorkDayStartString)
	if err != nil {
		return nil, fmt.Errorf("invalid ENGINE_WORKDAY_START: %w", err)
	}
	workDayEnd, err := json_types.ParseTimeOfDay(cfg.Engine.WorkDayEndString)
	if err != nil {
		return nil, fmt.Errorf("invalid ENGINE_WORKDAY_END: %w", err)
	}
	if !workDayStart.Before(workDayEnd) {
		return nil, fmt.Errorf("workday start %s must be before workday end %s", workDayStart, workDayEnd)
	}
	cfg.Engine.WorkDayStart = workDayStart
	cfg.Engine.WorkDayEnd = workDayEnd

	if cfg.Engine.SlotDurationMinutes <= 0 {
		return nil, fmt.Errorf("ENGINE_SLOT_DURATION_MINUTES must be positive")
	}
	if cfg.Engine.BookingBufferMinutes < 0 {
		return nil, fmt.Errorf("ENGINE_BOOKING_BUFFER_MINUTES must not be negative")
	}

	// Если RabbitMQ не включен, то кэш тоже не включаем
	if !cfg.RabbitMQ.Enabled {
		cfg.Cache.Enabled = false
	}

	return cfg, nil
}

func (c *Config) IsLocal() bool {
	return c.App.Env == EnvLocal
}

func (c *Config) IsNotLocal() bool {
	return c.App.Env == EnvDev || c.App.Env == EnvStage || c.App.Env == EnvProduction
}
