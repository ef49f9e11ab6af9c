package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Postgres  PostgresConfig  `mapstructure:"postgres"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	Events    EventsConfig    `mapstructure:"events"`
	Game      GameConfig      `mapstructure:"game"`
	WebSocket WebSocketConfig `mapstructure:"websocket"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	Host         string        `mapstructure:"host"`
	AllowOrigins string        `mapstructure:"allow_origins"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type PostgresConfig struct {
	Port     string `mapstructure:"port"`
	Host     string `mapstructure:"host"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN is the lib/pq connection string.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DB, p.SSLMode)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// EventsConfig selects where room lifecycle events go: redis, kafka or none.
type EventsConfig struct {
	Driver string `mapstructure:"driver"`
}

type GameConfig struct {
	SettleDelay     time.Duration `mapstructure:"settle_delay"`
	AnswerPoints    int           `mapstructure:"answer_points"`
	CodeLength      int           `mapstructure:"code_length"`
	QuestionTimeout time.Duration `mapstructure:"question_timeout"`
	RoomTTL         time.Duration `mapstructure:"room_ttl"`
	ReapInterval    time.Duration `mapstructure:"reap_interval"`
}

type WebSocketConfig struct {
	MessagesPerSecond float64 `mapstructure:"messages_per_second"`
	Burst             int     `mapstructure:"burst"`
	SendBuffer        int     `mapstructure:"send_buffer"`
}

func Read() Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/app")
	viper.AddConfigPath("/")

	setDefaults()

	// ENV overrides with prefix QUIZ_ and dot-to-underscore replacement
	viper.SetEnvPrefix("QUIZ")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		zap.L().Warn("Failed to read configuration file", zap.Error(err))
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		zap.L().Error("Configuration could not be parsed", zap.Error(err))
	}

	return config
}

func setDefaults() {
	viper.SetDefault("app.name", "quiz-service")
	viper.SetDefault("app.version", "0.1.0")

	viper.SetDefault("server.port", "3000")
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.allow_origins", "*")
	viper.SetDefault("server.idle_timeout", "5s")
	viper.SetDefault("server.read_timeout", "10s")
	viper.SetDefault("server.write_timeout", "10s")

	viper.SetDefault("postgres.port", "5432")
	viper.SetDefault("postgres.host", "localhost")
	viper.SetDefault("postgres.user", "myuser")
	viper.SetDefault("postgres.password", "mypassword")
	viper.SetDefault("postgres.db", "quizdb")
	viper.SetDefault("postgres.sslmode", "disable")

	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", "6379")
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("kafka.brokers", []string{"localhost:9092"})
	viper.SetDefault("kafka.topic", "quiz-events")

	viper.SetDefault("events.driver", "none")

	viper.SetDefault("game.settle_delay", "2s")
	viper.SetDefault("game.answer_points", 100)
	viper.SetDefault("game.code_length", 5)
	viper.SetDefault("game.question_timeout", "0s")
	viper.SetDefault("game.room_ttl", "2h")
	viper.SetDefault("game.reap_interval", "5m")

	viper.SetDefault("websocket.messages_per_second", 10)
	viper.SetDefault("websocket.burst", 20)
	viper.SetDefault("websocket.send_buffer", 256)
}
