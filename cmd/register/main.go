package main

import (
	"context"
	"time"

	"github.com/infigaming-com/xe-bot/config"
	"github.com/infigaming-com/xe-bot/interaction"
	"github.com/infigaming-com/xe-bot/util"
	"go.uber.org/zap"
)

func main() {
	lg, flush := util.NewLogger("xe-bot-register")
	defer flush()

	cfg, err := config.Load(lg)
	if err != nil {
		lg.Fatal("failed to load config", zap.Error(err))
	}
	if err := cfg.ValidateRegister(); err != nil {
		lg.Fatal("invalid config", zap.Error(err))
	}

	// Only the schema is published, so the command needs no collaborators.
	registry := interaction.NewRegistry(
		interaction.NewXECommand(lg, nil, nil, nil, nil),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	registrar := interaction.NewRegistrar(lg, cfg.Discord.APIURL, cfg.Discord.AppID, cfg.Discord.BotToken)
	if err := registrar.Register(ctx, registry); err != nil {
		lg.Fatal("failed to register commands", zap.Error(err))
	}
}
