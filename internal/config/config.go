// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек приложения
type Config struct {
	Env             string `yaml:"env" env:"ENV" env-default:"local"`
	API             `yaml:"api"`
	TokenStore      `yaml:"token_store"`
	RedisConnection `yaml:"redis_connection"`
	StubServer      `yaml:"stub_server"`
}

// API структура для настройки клиента удалённого REST API
type API struct {
	BaseURL           string        `yaml:"base_url" env:"API_BASE_URL" env-default:"http://localhost:3001/api"`
	Timeout           time.Duration `yaml:"timeout" env-default:"10s"`
	RequestsPerSecond float64       `yaml:"requests_per_second" env-default:"10"`
}

// TokenStore структура для настройки хранилища токенов сессии
type TokenStore struct {
	Backend  string `yaml:"backend" env:"TOKEN_STORE_BACKEND" env-default:"file"`
	FilePath string `yaml:"file_path" env:"TOKEN_FILE_PATH"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDR"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
}

// StubServer структура для настройки локальной заглушки бэкенда
type StubServer struct {
	AddressHTTP   string        `yaml:"addresshttp" env-default:"localhost:3001"`
	TimeoutHTTP   time.Duration `yaml:"timeouthttp" env-default:"5s"`
	IdleTimeout   time.Duration `yaml:"idle_timeout" env-default:"60s"`
	JWTSecretKey  string        `yaml:"jwt_secret_key" env:"STUB_JWT_SECRET" env-default:"stub-secret"`
	TokenTTL      time.Duration `yaml:"token_ttl" env-default:"1h"`
	AdminEmail    string        `yaml:"admin_email" env-default:"admin@example.com"`
	AdminPassword string        `yaml:"admin_password" env-default:"admin123"`
}

// MustLoad функция для загрузки конфига, путь берётся из переменной окружения CONFIG_PATH
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	return MustLoadPath(configPath)
}

// MustLoadPath загружает конфиг из указанного файла
func MustLoadPath(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}

// ResolveTokenFilePath возвращает путь к файлу с токенами.
// Если путь не задан в конфиге, используется ~/.admin-client/tokens.json.
func (c *Config) ResolveTokenFilePath() (string, error) {
	const op = "config.ResolveTokenFilePath"
	if c.TokenStore.FilePath != "" {
		return c.TokenStore.FilePath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return filepath.Join(home, ".admin-client", "tokens.json"), nil
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"API:\n"+
			"  BaseURL: %s\n"+
			"  Timeout: %s\n"+
			"  RequestsPerSecond: %g\n"+
			"TokenStore:\n"+
			"  Backend: %s\n"+
			"  FilePath: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"StubServer:\n"+
			"  Address: %s\n"+
			"  TokenTTL: %s\n",
		c.Env,
		c.API.BaseURL,
		c.API.Timeout,
		c.API.RequestsPerSecond,
		c.TokenStore.Backend,
		c.TokenStore.FilePath,
		c.AddressRedis,
		c.DB,
		c.AddressHTTP,
		c.TokenTTL,
	)
}
