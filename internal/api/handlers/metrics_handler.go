package handlers

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nktomer45/planboard/internal/dimension"
	"github.com/nktomer45/planboard/internal/domain"
	"github.com/nktomer45/planboard/internal/metrics"
	"github.com/nktomer45/planboard/internal/service"
)

type MetricsHandler struct {
	service *service.MetricsService
}

func NewMetricsHandler(service *service.MetricsService) *MetricsHandler {
	return &MetricsHandler{service: service}
}

type rowsRequest struct {
	Rows []domain.RawRow `json:"rows"`
}

type dimensionGridRequest struct {
	Dim1   string `json:"dim1"`
	Dim2   string `json:"dim2"`
	Values []struct {
		Dim1   string `json:"dim1"`
		Dim2   string `json:"dim2"`
		Value1 any    `json:"value1"`
		Value2 any    `json:"value2"`
	} `json:"values"`
}

// Calculate derives sum/product/ratio, outlier hints and column summaries
func (h *MetricsHandler) Calculate(c *gin.Context) {
	var req rowsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}

	result, err := h.service.Calculate(req.Rows)
	if err != nil {
		respondError(c, "failed to calculate metrics", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Groups aggregates rows by their first dimension
func (h *MetricsHandler) Groups(c *gin.Context) {
	var req rowsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}

	groups, err := h.service.Groups(req.Rows)
	if err != nil {
		respondError(c, "failed to group metrics", err)
		return
	}

	c.JSON(http.StatusOK, groups)
}

// GetMargin classifies a gross-margin percentage
func (h *MetricsHandler) GetMargin(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("gm"))
	if raw == "" {
		badRequest(c, "gm is required", fmt.Errorf("%w: gm", errMissingParam))
		return
	}

	gm, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		badRequest(c, "gm must be a number", err)
		return
	}
	if math.IsNaN(gm) || math.IsInf(gm, 0) {
		badRequest(c, "gm must be a finite number", fmt.Errorf("%w: %s", metrics.ErrNonFinite, raw))
		return
	}

	c.JSON(http.StatusOK, h.service.Margin(gm))
}

// GetDimensionGrid cross-joins two dimensions with zero values
func (h *MetricsHandler) GetDimensionGrid(c *gin.Context) {
	dim1 := strings.TrimSpace(c.Query("dim1"))
	dim2 := strings.TrimSpace(c.Query("dim2"))
	if dim1 == "" || dim2 == "" {
		badRequest(c, "dim1 and dim2 are required", fmt.Errorf("%w: dim1, dim2", errMissingParam))
		return
	}

	h.respondGrid(c, dim1, dim2, nil)
}

// PostDimensionGrid cross-joins two dimensions and applies the supplied values
func (h *MetricsHandler) PostDimensionGrid(c *gin.Context) {
	var req dimensionGridRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	if req.Dim1 == "" || req.Dim2 == "" {
		badRequest(c, "dim1 and dim2 are required", fmt.Errorf("%w: dim1, dim2", errMissingParam))
		return
	}

	values := make(map[string]dimension.Values, len(req.Values))
	for _, v := range req.Values {
		values[dimension.CellKey(v.Dim1, v.Dim2)] = dimension.Values{Value1: v.Value1, Value2: v.Value2}
	}

	h.respondGrid(c, req.Dim1, req.Dim2, values)
}

func (h *MetricsHandler) respondGrid(c *gin.Context, dim1, dim2 string, values map[string]dimension.Values) {
	result, err := h.service.DimensionGrid(dim1, dim2, values)
	if err != nil {
		respondError(c, "failed to build dimension grid", err)
		return
	}

	c.JSON(http.StatusOK, result)
}
