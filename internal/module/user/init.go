package user

import (
	"coucou-server/internal/global/database"
	"coucou-server/internal/global/logger"
	"coucou-server/internal/storage"
	"log/slog"
)

var (
	log   *slog.Logger
	store *storage.Store
)

type ModuleUser struct{}

func (u *ModuleUser) GetName() string {
	return "User"
}

func (u *ModuleUser) Init() {
	log = logger.New("User")
	store = storage.New(database.DB)
}
