package message

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

type ModuleMessage struct{}

func (m *ModuleMessage) GetName() string {
	return "Message"
}

func (m *ModuleMessage) Init() {
	log = logger.New("Message")
	store = storage.New(database.DB)
}
