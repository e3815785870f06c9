package module

import (
	"coucou-server/internal/module/activity"
	"coucou-server/internal/module/message"
	"coucou-server/internal/module/ping"
	"coucou-server/internal/module/user"

	"github.com/gin-gonic/gin"
)

type Module interface {
	GetName() string
	Init()
	InitRouter(r *gin.RouterGroup)
}

var Modules []Module

func registerModule(m []Module) {
	Modules = append(Modules, m...)
}

func init() {
	// Register your module here
	registerModule([]Module{
		&user.ModuleUser{},
		&ping.ModulePing{},
		&activity.ModuleActivity{},
		&message.ModuleMessage{},
	})
}
