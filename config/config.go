package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	ServerPort  string
	BaseURL     string
	DatabaseDSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	KafkaBroker   string
	KafkaTopic    string
	KafkaUsername string
	KafkaPassword string

	CloudinaryURL string

	SessionSecret string
}

func LoadConfig() Config {
	if os.Getenv("ENV") != "prod" {
		if err := godotenv.Overload(); err != nil {
			log.Warn().Err(err).Msg("env file not found or could not be loaded")
		}
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Warn().Str("REDIS_DB", v).Msg("invalid REDIS_DB, using 0")
		} else {
			redisDB = n
		}
	}

	return Config{
		ServerPort:  os.Getenv("SERVER_PORT"),
		BaseURL:     os.Getenv("BASE_URL"),
		DatabaseDSN: os.Getenv("DATABASE_DSN"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		KafkaBroker:   os.Getenv("KAFKA_BROKER"),
		KafkaTopic:    os.Getenv("KAFKA_TOPIC"),
		KafkaUsername: os.Getenv("KAFKA_USERNAME"),
		KafkaPassword: os.Getenv("KAFKA_PASSWORD"),

		CloudinaryURL: os.Getenv("CLOUDINARY_URL"),

		SessionSecret: os.Getenv("SESSION_SECRET"),
	}
}
