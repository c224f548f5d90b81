package main

import (
	"os"

	"github.com/SilverSkills/user_service/config"
	"github.com/SilverSkills/user_service/internal/api"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if os.Getenv("ENV") != "prod" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	cfg := config.LoadConfig()
	api.StartServer(cfg)
}
