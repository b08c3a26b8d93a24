package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"corebo/console/internal/auth"
	"corebo/console/internal/config"
	"corebo/console/internal/database"
	"corebo/console/internal/dictionary"
	"corebo/console/internal/logger"
	"corebo/console/internal/model"
	"corebo/console/internal/router"
	"corebo/console/internal/svc"
	"corebo/console/internal/utils"
)

func main() {
	cfg, err := config.LoadConfig("config/config.yml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger.Init(&cfg.Log)
	defer logger.Sync()

	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalf("init database: %v", err)
	}
	defer database.Close()

	db := database.GetDB()
	if err := db.AutoMigrate(
		&model.User{},
		&model.FormDesign{},
	); err != nil {
		log.Fatalf("migrate database: %v", err)
	}
	initDefaultData(db)

	if err := auth.InitSaToken(cfg); err != nil {
		log.Fatalf("init satoken: %v", err)
	}

	dict, err := dictionary.Load(cfg.Dictionary.Path, cfg.Dictionary.DefaultLocale)
	if err != nil {
		log.Fatalf("load dictionary: %v", err)
	}

	svc.Init(cfg, db, dict)
	defer svc.Ctx.Cache.Close()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	})

	router.Setup(app, db, svc.Ctx.Cache)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		log.Printf("server listening on http://%s", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	if err := app.Shutdown(); err != nil {
		log.Printf("shutdown error: %v", err)
	}
	log.Println("server stopped")
}

// initDefaultData seeds the first admin account on an empty database.
func initDefaultData(db *gorm.DB) {
	var count int64
	db.Model(&model.User{}).Count(&count)
	if count > 0 {
		return
	}

	log.Println("seeding default admin user...")
	admin := &model.User{
		Username: "admin",
		Password: utils.MD5("admin123"),
		Nickname: "Administrator",
		Status:   1,
		Role:     auth.RoleAdmin,
		Locale:   "en",
	}
	db.Create(admin)
}
