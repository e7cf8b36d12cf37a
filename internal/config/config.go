package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config — полная конфигурация процесса.
type Config struct {
	DB  DBConfig
	Bot BotConfig
	Log LogConfig
}

type DBConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifeTime int // минут
}

type BotConfig struct {
	// Секретный код выдачи прав админа.
	AdminSecretCode string
	// TTL неактивной сессии в минутах; 0 — без истечения.
	SessionTTLMin int
}

type LogConfig struct {
	Level string
}

// Load читает конфигурацию из файла (если задан) и переменных окружения
// с префиксом WORKFORCE. Флаги уже привязаны к viper на уровне cmd.
func Load(cfgFile string) (*Config, error) {
	v := viper.GetViper()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/workforce-bot/")
		v.SetConfigType("yaml")
		v.SetConfigName("workforce-bot")
	}

	v.SetEnvPrefix("WORKFORCE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Файл опционален, но синтаксическая ошибка в нём — нет.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		DB: DBConfig{
			Host:            v.GetString("db.host"),
			Port:            v.GetInt("db.port"),
			User:            v.GetString("db.user"),
			Password:        v.GetString("db.password"),
			Name:            v.GetString("db.name"),
			SSLMode:         v.GetString("db.sslmode"),
			TimeZone:        v.GetString("db.timezone"),
			MaxOpenConns:    v.GetInt("db.max_open_conns"),
			MaxIdleConns:    v.GetInt("db.max_idle_conns"),
			ConnMaxLifeTime: v.GetInt("db.conn_max_lifetime_min"),
		},
		Bot: BotConfig{
			AdminSecretCode: v.GetString("bot.admin_secret_code"),
			SessionTTLMin:   v.GetInt("bot.session_ttl_min"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
		},
	}

	if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "" {
		return nil, fmt.Errorf("invalid DB config: host/user/name must not be empty")
	}
	if cfg.Bot.AdminSecretCode == "" {
		return nil, fmt.Errorf("invalid bot config: admin_secret_code must not be empty")
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db.host", "postgres")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "workforce")
	v.SetDefault("db.password", "workforce")
	v.SetDefault("db.name", "workforce_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "Europe/Moscow")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime_min", 30)

	v.SetDefault("bot.session_ttl_min", 0)

	v.SetDefault("log.level", "info")
}
