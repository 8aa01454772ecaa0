package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(handler *Handler, authRequired, authOptional gin.HandlerFunc, environment string) *gin.Engine {
	if environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:   []string{"Content-Disposition"},
		MaxAge:          12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	products := router.Group("/products")
	products.GET("/prices", handler.listPrices)
	products.GET("/prices/:type", handler.getPrice)
	products.PUT("/prices/:type", authRequired, handler.updatePrice)

	router.POST("/calculator/calculate", handler.calculate)

	quotations := router.Group("/quotations")
	quotations.POST("", authOptional, handler.createQuotation)
	quotations.GET("", handler.listQuotations)
	quotations.GET("/id/:id", handler.getQuotationByID)
	quotations.GET("/number/:number", handler.getQuotationByNumber)
	quotations.GET("/number/:number/pdf", handler.generatePDF)
	quotations.GET("/export", authRequired, handler.exportExcel)

	return router
}
