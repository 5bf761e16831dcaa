package router

import (
	"github.com/bacolgede83-big/Gede23/internal/config"
	"github.com/bacolgede83-big/Gede23/internal/handler"
	"github.com/bacolgede83-big/Gede23/internal/middleware"
	"github.com/bacolgede83-big/Gede23/internal/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires the gin engine and the API surface.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	st := store.New(db)

	api := r.Group("/api")

	// auth endpoints, no token required
	authHandler := handler.NewAuthHandler(db, cfg.Security, cfg.JWT)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(cfg.JWT.Secret, db),
		middleware.AuditMiddleware(db),
	)

	protected.GET("/me", authHandler.Me)

	ledgerHandler := handler.NewLedgerHandler(st)
	protected.GET("/bku", ledgerHandler.ListGeneral)
	protected.POST("/bku", ledgerHandler.CreateGeneral)
	protected.PUT("/bku/:id", ledgerHandler.UpdateGeneral)
	protected.DELETE("/bku/:id", ledgerHandler.DeleteGeneral)

	protected.GET("/bkp", ledgerHandler.ListDetail)
	protected.POST("/bkp", ledgerHandler.CreateDetail)
	protected.PUT("/bkp/:id", ledgerHandler.UpdateDetail)
	protected.DELETE("/bkp/:id", ledgerHandler.DeleteDetail)

	protected.GET("/kategori", ledgerHandler.ListCategories)

	loanHandler := handler.NewLoanHandler(st)
	protected.GET("/peminjam", loanHandler.List)
	protected.POST("/peminjam", loanHandler.Create)
	protected.PUT("/peminjam/:id", loanHandler.Update)
	protected.DELETE("/peminjam/:id", loanHandler.Delete)
	protected.GET("/rekap", loanHandler.Recap)

	depositHandler := handler.NewDepositHandler(st)
	protected.GET("/setoran", depositHandler.List)
	protected.POST("/setoran", depositHandler.Create)
	protected.PUT("/setoran/:id", depositHandler.Update)
	protected.DELETE("/setoran/:id", depositHandler.Delete)

	paymentHandler := handler.NewPaymentHandler(st)
	protected.GET("/pembayaran", paymentHandler.Grid)
	protected.POST("/pembayaran/toggle", paymentHandler.Toggle)
	protected.POST("/pembayaran/import", paymentHandler.Import)

	reconHandler := handler.NewReconHandler(st)
	protected.GET("/rekonsiliasi", reconHandler.Compute)
	protected.POST("/rekonsiliasi", reconHandler.Save)
	protected.GET("/lra", reconHandler.History)

	reportHandler := handler.NewReportHandler(st)
	protected.GET("/saldo-akhir", reportHandler.YearReport)

	importExportHandler := handler.NewImportExportHandler(st)
	protected.GET("/export/:collection", importExportHandler.Export)
	protected.GET("/backup", importExportHandler.Backup)
	protected.POST("/import/:collection", importExportHandler.Import)
	protected.POST("/reset", importExportHandler.Reset)

	return r
}
