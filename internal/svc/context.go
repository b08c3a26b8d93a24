package svc

import (
	"time"

	"gorm.io/gorm"

	"corebo/console/internal/cache"
	"corebo/console/internal/config"
	"corebo/console/internal/dictionary"
	"corebo/console/internal/dispatch"
	"corebo/console/internal/form"
	"corebo/console/internal/workflow"
)

// ServiceContext holds the shared dependencies for handlers and logic.
type ServiceContext struct {
	Config     *config.Config
	DB         *gorm.DB
	Cache      *cache.DesignCache
	Dict       *dictionary.Dictionary
	Workflow   *workflow.Client
	Dispatcher *dispatch.Dispatcher
	Sessions   *form.Registry
}

var Ctx *ServiceContext

// Init wires the service context from loaded configuration.
func Init(cfg *config.Config, db *gorm.DB, dict *dictionary.Dictionary) {
	designCache := cache.NewDesignCache(&cfg.Redis)
	client := workflow.NewClient(&cfg.Workflow)
	Ctx = &ServiceContext{
		Config:     cfg,
		DB:         db,
		Cache:      designCache,
		Dict:       dict,
		Workflow:   client,
		Dispatcher: dispatch.NewDispatcher(client, cfg.Search),
		Sessions:   form.NewRegistry(30 * time.Minute),
	}
}
