package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rollquote/quotation-service/internal/http/middleware"
	"github.com/rollquote/quotation-service/internal/service"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type Handler struct {
	prices     *service.PriceService
	quotations *service.QuotationService
	log        zerolog.Logger
}

func NewHandler(prices *service.PriceService, quotations *service.QuotationService, log zerolog.Logger) *Handler {
	return &Handler{prices: prices, quotations: quotations, log: log}
}

func (h *Handler) listPrices(c *gin.Context) {
	entries := h.prices.ListPrices(c.Request.Context())
	response := make([]priceResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, toPriceResponse(entry))
	}
	c.JSON(http.StatusOK, response)
}

func (h *Handler) getPrice(c *gin.Context) {
	entry, err := h.prices.GetPrice(c.Request.Context(), c.Param("type"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPriceResponse(*entry))
}

type updatePriceRequest struct {
	PricePerArea string `json:"price_per_area" binding:"required"`
}

func (h *Handler) updatePrice(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req updatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.prices.UpdatePrice(c.Request.Context(), &principal, c.Param("type"), req.PricePerArea); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) calculate(c *gin.Context) {
	var req calculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	breakdown, err := h.quotations.Calculate(c.Request.Context(), req.toInput())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBreakdownResponse(*breakdown))
}

func (h *Handler) createQuotation(c *gin.Context) {
	var req createQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	principal := middleware.PrincipalFrom(c)
	quotation, err := h.quotations.Create(c.Request.Context(), req.toInput(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"quotation_number": quotation.QuotationNumber})
}

func (h *Handler) listQuotations(c *gin.Context) {
	quotations := h.quotations.List(c.Request.Context())
	response := make([]quotationResponse, 0, len(quotations))
	for _, quotation := range quotations {
		response = append(response, toQuotationResponse(quotation))
	}
	c.JSON(http.StatusOK, response)
}

func (h *Handler) getQuotationByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quotation id"})
		return
	}

	quotation, err := h.quotations.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toQuotationResponse(*quotation))
}

func (h *Handler) getQuotationByNumber(c *gin.Context) {
	quotation, err := h.quotations.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toQuotationResponse(*quotation))
}

func (h *Handler) generatePDF(c *gin.Context) {
	doc, err := h.quotations.GeneratePDF(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+doc.FileName+`"`)
	c.Data(http.StatusOK, contentTypePDF, doc.Content)
}

func (h *Handler) exportExcel(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	doc, err := h.quotations.ExportExcel(c.Request.Context(), &principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+doc.FileName+`"`)
	c.Data(http.StatusOK, contentTypeXLSX, doc.Content)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrStorageUnavailable):
		h.log.Error().Err(err).Msg("storage unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
	case errors.Is(err, service.ErrRenderFailed):
		h.log.Error().Err(err).Msg("document rendering failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "document rendering failed"})
	default:
		h.log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
