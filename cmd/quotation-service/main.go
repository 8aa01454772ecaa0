package main

import (
	"fmt"
	"os"

	"github.com/rollquote/quotation-service/internal/auth"
	"github.com/rollquote/quotation-service/internal/config"
	"github.com/rollquote/quotation-service/internal/db"
	"github.com/rollquote/quotation-service/internal/excel"
	httphandler "github.com/rollquote/quotation-service/internal/http"
	"github.com/rollquote/quotation-service/internal/http/middleware"
	"github.com/rollquote/quotation-service/internal/logger"
	"github.com/rollquote/quotation-service/internal/pdf"
	"github.com/rollquote/quotation-service/internal/repository"
	"github.com/rollquote/quotation-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	priceRepo := repository.NewPriceRepository(database)
	quotationRepo := repository.NewQuotationRepository(database)
	pdfGenerator := pdf.NewGenerator(cfg.Quotes.CompanyName)
	excelGenerator := excel.NewGenerator()

	priceService := service.NewPriceService(priceRepo, log)
	quotationService := service.NewQuotationService(quotationRepo, priceRepo, pdfGenerator, excelGenerator, cfg, log)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(priceService, quotationService, log)
	router := httphandler.NewRouter(handler, middleware.Auth(tokenParser), middleware.OptionalAuth(tokenParser), cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting quotation service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
