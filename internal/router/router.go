package router

import (
	"github.com/peg96/FinanceBinder/internal/config"
	"github.com/peg96/FinanceBinder/internal/handler"
	"github.com/peg96/FinanceBinder/internal/middleware"
	"github.com/peg96/FinanceBinder/internal/session"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine, templates and all routes.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.LoadHTMLGlob(cfg.Server.TemplateGlob)

	store := session.NewStore(db, cfg.Session.Secret, cfg.Session.ExpireHours)
	r.Use(middleware.Session(store))

	authHandler := handler.NewAuthHandler(db, store, cfg.Security.BcryptCost)
	binderHandler := handler.NewBinderHandler(db, store)
	categoryHandler := handler.NewCategoryHandler(db, store)
	transactionHandler := handler.NewTransactionHandler(db, store)
	exportHandler := handler.NewExportHandler(db, store)

	r.GET("/", authHandler.Index)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	protected := r.Group("")
	protected.Use(middleware.RequireAuth(store))

	protected.GET("/dashboard", binderHandler.Dashboard)
	protected.POST("/change-password", authHandler.ChangePassword)

	api := protected.Group("/api")
	api.POST("/binder", binderHandler.Create)
	api.POST("/binder/:id/delete", binderHandler.Delete)
	api.POST("/binder/:id/category", categoryHandler.Create)
	api.POST("/category/:id/delete", categoryHandler.Delete)
	api.POST("/binder/:id/transaction", transactionHandler.Add)
	api.POST("/transaction/:id/delete", transactionHandler.Delete)
	api.POST("/transaction/:id/edit", transactionHandler.Edit)
	api.GET("/binder/:id/data", transactionHandler.BinderData)
	api.GET("/binder/:id/export/xlsx", exportHandler.BinderXLSX)

	return r
}
