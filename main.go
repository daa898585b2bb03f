package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"frontdesk/dao"
	"frontdesk/internal/logging"
	"frontdesk/internal/notify"
	"frontdesk/model"
	"frontdesk/route"
	"frontdesk/service"
)

func main() {
	cfg, err := loadConfig("config/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logging.Init("frontdesk", cfg.Env)

	var sessions dao.SessionStore
	var tickets dao.TicketStore
	if cfg.Redis.Enabled {
		store := dao.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			time.Duration(cfg.Redis.TTLHours)*time.Hour)
		defer store.Close()
		sessions, tickets = store, store
		log.Info().Str("addr", cfg.Redis.Addr).Msg("using redis store")
	} else {
		store := dao.NewMemoryStore()
		sessions, tickets = store, store
		log.Info().Msg("using in-memory store")
	}

	var notifier notify.Notifier = notify.Noop{}
	if cfg.Practice.WebhookURL != "" {
		notifier = notify.NewWebhook(cfg.Practice.WebhookURL)
		log.Info().Str("url", cfg.Practice.WebhookURL).Msg("staff notifications via webhook")
	}

	chatSvc := service.NewChatService(sessions, tickets, notifier)

	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	route.Register(r, chatSvc)

	log.Info().Str("addr", cfg.Server.Addr).Str("practice", cfg.Practice.Name).Msg("frontdesk agent listening")
	if err := r.Run(cfg.Server.Addr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func loadConfig(path string) (*model.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg model.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Redis.TTLHours <= 0 {
		cfg.Redis.TTLHours = 24
	}

	return &cfg, nil
}
