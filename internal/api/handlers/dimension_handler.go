package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nktomer45/planboard/internal/dimension"
)

type DimensionHandler struct {
	registry *dimension.Registry
}

func NewDimensionHandler(registry *dimension.Registry) *DimensionHandler {
	return &DimensionHandler{registry: registry}
}

type memberRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

func (h *DimensionHandler) ListKinds(c *gin.Context) {
	c.JSON(http.StatusOK, h.registry.Kinds())
}

func (h *DimensionHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.registry.List(c.Param("kind")))
}

func (h *DimensionHandler) Add(c *gin.Context) {
	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}

	member, err := h.registry.Add(c.Param("kind"), req.Name, req.Code)
	if err != nil {
		respondError(c, "failed to add dimension member", err)
		return
	}

	c.JSON(http.StatusCreated, member)
}

func (h *DimensionHandler) Update(c *gin.Context) {
	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}

	member, err := h.registry.Update(c.Param("kind"), c.Param("id"), req.Name, req.Code)
	if err != nil {
		respondError(c, "failed to update dimension member", err)
		return
	}

	c.JSON(http.StatusOK, member)
}

func (h *DimensionHandler) Delete(c *gin.Context) {
	if err := h.registry.Delete(c.Param("kind"), c.Param("id")); err != nil {
		respondError(c, "failed to delete dimension member", err)
		return
	}

	c.Status(http.StatusNoContent)
}
