package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env      string `envconfig:"ENV"`
	LogLevel string `envconfig:"LOG_LEVEL"`

	Database    DatabaseConfigs  `envconfig:"DATABASE"`
	ApiServer   APIServerConfigs `envconfig:"API_SERVER"`
	ProxyServer ServerConfigs    `envconfig:"PROXY_SERVER"`
	Auth        AuthConfigs      `envconfig:"AUTH"`
	Redis       RedisConfigs     `envconfig:"REDIS"`
	Kafka       KafkaConfigs     `envconfig:"KAFKA"`
	Cron        CronConfigs      `envconfig:"CRON"`
}

type DatabaseConfigs struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"`
	Database string `envconfig:"NAME"`
	User     string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	LogLevel string `envconfig:"LOG_LEVEL"`
}

func (d DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host           string   `envconfig:"HOST"`
	Port           string   `envconfig:"PORT"`
	Cert           string   `envconfig:"CERT"`
	Key            string   `envconfig:"KEY"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS"`
}

func (c ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

type APIServerConfigs struct {
	ServerConfigs

	MaxLimit     int `envconfig:"MAX_LIMIT"`
	DefaultLimit int `envconfig:"DEFAULT_LIMIT"`
}

type AuthConfigs struct {
	TokenSecret string       `envconfig:"TOKEN_SECRET"`
	AccessToken TokenConfigs `envconfig:"ACCESS_TOKEN"`
	SocketToken TokenConfigs `envconfig:"SOCKET_TOKEN"`
}

type TokenConfigs struct {
	Name       string        `envconfig:"NAME"`
	Expiration time.Duration `envconfig:"EXPIRATION"`
}

type RedisConfigs struct {
	Addr     string `envconfig:"ADDR"`
	Password string `envconfig:"PASSWORD"`
}

type KafkaConfigs struct {
	Addr  string `envconfig:"ADDR"`
	Topic string `envconfig:"TOPIC"`
}

type CronConfigs struct {
	BanExpirySpec string `envconfig:"BAN_EXPIRY_SPEC"`
}

// Default returns the configurations used when neither the config file nor
// the environment sets a value.
func Default() Configs {
	return Configs{
		Env:      "local",
		LogLevel: "info",
		Database: DatabaseConfigs{
			Host:     "localhost",
			Port:     "3306",
			Database: "threadhub",
			User:     "mysql",
			Password: "mysql",
			LogLevel: "error",
		},
		ApiServer: APIServerConfigs{
			ServerConfigs: ServerConfigs{
				Port:           "8080",
				AllowedOrigins: []string{"http://localhost:3000"},
			},
			MaxLimit:     50,
			DefaultLimit: 10,
		},
		ProxyServer: ServerConfigs{
			Port:           "8081",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Auth: AuthConfigs{
			TokenSecret: "secret",
			AccessToken: TokenConfigs{Name: "token", Expiration: 24 * time.Hour},
			SocketToken: TokenConfigs{Name: "socket_token", Expiration: time.Hour},
		},
		Redis: RedisConfigs{Addr: "localhost:6379"},
		Kafka: KafkaConfigs{Topic: "live_event"},
		Cron:  CronConfigs{BanExpirySpec: "*/10 * * * *"},
	}
}
