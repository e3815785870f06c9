package activity

import (
	"coucou-server/config"
	"coucou-server/internal/global/database"
	"coucou-server/internal/global/httpclient"
	"coucou-server/internal/global/logger"
	"coucou-server/internal/global/pictureBed"
	"coucou-server/internal/global/polish"
	"coucou-server/internal/module/activity/lifecycle"
	"coucou-server/internal/storage"
	"log/slog"
	"time"
)

var (
	log      *slog.Logger
	store    *storage.Store
	manager  *lifecycle.Manager
	polisher *polish.Client
	bed      *pictureBed.PictureBed
)

type ModuleActivity struct{}

func (p *ModuleActivity) GetName() string {
	return "Activity"
}

func (p *ModuleActivity) Init() {
	log = logger.New("Activity")
	cfg := config.Get()

	store = storage.New(database.DB)
	manager = lifecycle.NewManager(store, store, log)

	client := httpclient.Client
	if client == nil {
		client = httpclient.New(time.Duration(cfg.Polish.TimeoutSeconds) * time.Second)
	}
	polisher = polish.New(client, cfg.Polish.Endpoint, cfg.Polish.APIKey, cfg.Polish.Model, log)
	bed = pictureBed.NewFromConfig(cfg.S3)
}
