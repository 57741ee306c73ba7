package main

import (
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"persona-chat/internal/chat"
	"persona-chat/internal/config"
	"persona-chat/internal/helper"
	"persona-chat/internal/llmservice"
	"persona-chat/internal/persona"
	"persona-chat/internal/reddit"
	"persona-chat/internal/server"
)

const configFilePath = "./configs/config.yaml"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	configPath := flag.String("config", configFilePath, "Path to the config file")
	addr := flag.String("addr", "", "Listen address (overrides config)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found")
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	for _, dir := range []string{cfg.Server.PersonasDir, cfg.Server.StaticDir} {
		if err := helper.CreateFolder(dir); err != nil {
			log.Fatal().Err(err).Str("dir", dir).Msg("Error creating folder")
		}
	}

	llmClient := llmservice.NewClient(&cfg.LLM)
	fetcher := reddit.NewFetcher(&cfg.Reddit)
	personas := persona.NewService(llmClient, cfg)
	responder := chat.NewResponder(llmClient)

	srv := server.NewServer(cfg, fetcher, personas, responder)
	log.Info().Str("addr", cfg.Server.Addr).Msg("Starting persona chat server")
	if err := srv.Start(cfg.Server.Addr); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}
