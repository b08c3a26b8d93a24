package router

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"corebo/console/internal/auth"
	"corebo/console/internal/cache"
	"corebo/console/internal/handler"
	"corebo/console/internal/logic"
	"corebo/console/internal/middleware"
)

// Setup registers all routes.
func Setup(app *fiber.App, db *gorm.DB, designCache *cache.DesignCache) {
	app.Use(middleware.CORS(), middleware.RequestID(), middleware.RequestLogger(), middleware.Recover())

	userLogic := logic.NewUserLogic(db)
	designLogic := logic.NewDesignLogic(db, designCache)
	permService := auth.NewPermissionService(db)

	authHandler := handler.NewAuthHandler(userLogic)
	designHandler := handler.NewDesignHandler(designLogic)
	pageHandler := handler.NewPageHandler(designLogic, userLogic)
	tokenHandler := handler.NewTokenHandler()

	api := app.Group("/api")

	// Public routes.
	pub := api.Group("/auth")
	pub.Post("/login", authHandler.Login)
	pub.Post("/logout", authHandler.Logout)

	// Authenticated routes.
	authed := api.Group("", middleware.AuthMiddleware())

	ag := authed.Group("/auth")
	ag.Get("/user-info", authHandler.GetUserInfo)
	ag.Post("/change-password", authHandler.ChangePassword)
	ag.Post("/locale", authHandler.UpdateLocale)

	// Form design management.
	dg := authed.Group("/designs", middleware.PermissionMiddleware(permService, auth.PermDesignRead, auth.PermDesignManage))
	dg.Post("/list", designHandler.List)
	dg.Get("/:id", designHandler.Get)
	dg.Post("", middleware.PermissionMiddleware(permService, auth.PermDesignManage), designHandler.Save)
	dg.Delete("/:id", middleware.PermissionMiddleware(permService, auth.PermDesignManage), designHandler.Delete)

	// Form sessions and transactions.
	pg := authed.Group("/pages", middleware.PermissionMiddleware(permService, auth.PermPageUse))
	pg.Post("/open", pageHandler.Open)
	pg.Get("/:id/render", pageHandler.Render)
	pg.Post("/values", pageHandler.SetValues)
	pg.Post("/transact", pageHandler.Transact)
	pg.Post("/search", pageHandler.Search)
	pg.Post("/export", pageHandler.Export)
	pg.Post("/advanced-search", pageHandler.AdvancedSearch)
	pg.Delete("/:id", pageHandler.Close)

	// Session administration.
	tk := authed.Group("/tokens",
		middleware.RoleMiddleware(permService, auth.RoleAdmin),
		middleware.PermissionMiddleware(permService, auth.PermSessionManage))
	tk.Get("/:id", tokenHandler.Status)
	tk.Post("/:id/kickout", tokenHandler.KickOut)
	tk.Post("/:id/disable", tokenHandler.Disable)
	tk.Post("/:id/enable", tokenHandler.Enable)
}
