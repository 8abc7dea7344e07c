package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nktomer45/planboard/internal/domain"
	"github.com/nktomer45/planboard/internal/service"
)

type PlanningHandler struct {
	service *service.PlanningService
}

func NewPlanningHandler(service *service.PlanningService) *PlanningHandler {
	return &PlanningHandler{service: service}
}

type updateUnitsRequest struct {
	Units *int `json:"units" binding:"required"`
}

// GetStores returns the stores of the current load
func (h *PlanningHandler) GetStores(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Stores())
}

// GetSKUs returns the SKUs of the current load
func (h *PlanningHandler) GetSKUs(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.SKUs())
}

func (h *PlanningHandler) GetCalendar(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Calendar())
}

// GetGrid returns rows, derived cells and the column schema
func (h *PlanningHandler) GetGrid(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Grid())
}

// Refresh reloads the grid from the configured source. Unsaved edits are lost.
func (h *PlanningHandler) Refresh(c *gin.Context) {
	result, err := h.service.Refresh(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "failed to load planning data",
			"details": err.Error(),
			"grid":    h.service.Grid(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": result,
		"grid":   h.service.Grid(),
	})
}

// UpdateUnits edits the Sales Units cell of a row for one week
func (h *PlanningHandler) UpdateUnits(c *gin.Context) {
	var req updateUnitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}

	row, err := h.service.UpdateUnits(c.Param("id"), c.Param("week"), *req.Units)
	if err != nil {
		respondError(c, "failed to update units", err)
		return
	}

	c.JSON(http.StatusOK, row)
}

// GetWeekly returns the weekly sales and margin series
func (h *PlanningHandler) GetWeekly(c *gin.Context) {
	storeID := strings.TrimSpace(c.Query("store_id"))

	var tier domain.MarginTier
	if raw := c.Query("tier"); strings.TrimSpace(raw) != "" {
		t, ok := domain.ParseMarginTier(raw)
		if !ok {
			badRequest(c, "invalid tier value", fmt.Errorf("unknown margin tier %q", raw))
			return
		}
		tier = t
	}

	c.JSON(http.StatusOK, h.service.Weekly(storeID, tier))
}

// Export streams the grid as a CSV or XLSX download
func (h *PlanningHandler) Export(c *gin.Context) {
	format := service.NormalizeFormat(c.DefaultQuery("format", service.FormatCSV))

	var fill *bool
	if raw := strings.TrimSpace(c.Query("fill_missing")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(c, "invalid fill_missing value", err)
			return
		}
		fill = &v
	}

	var buf bytes.Buffer
	if err := h.service.Export(&buf, format, fill); err != nil {
		respondError(c, "failed to export planning data", err)
		return
	}

	contentType := "text/csv"
	if format == service.FormatXLSX {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}

	filename := service.ExportFileName(format, h.service.LoadedAt())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// Publish uploads an export to object storage
func (h *PlanningHandler) Publish(c *gin.Context) {
	format := service.NormalizeFormat(c.DefaultQuery("format", service.FormatCSV))

	info, err := h.service.Publish(c.Request.Context(), format)
	if err != nil {
		respondError(c, "failed to publish planning data", err)
		return
	}

	c.JSON(http.StatusCreated, info)
}

// ListExports lists previously published exports
func (h *PlanningHandler) ListExports(c *gin.Context) {
	objects, err := h.service.Published(c.Request.Context())
	if err != nil {
		respondError(c, "failed to list exports", err)
		return
	}

	c.JSON(http.StatusOK, objects)
}
