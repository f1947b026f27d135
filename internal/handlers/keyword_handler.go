package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jobsentry/jobsentry/internal/auth"
	"github.com/jobsentry/jobsentry/internal/dtos"
	"github.com/jobsentry/jobsentry/internal/services"
)

type KeywordHandler struct {
	Keywords *services.KeywordService
}

func NewKeywordHandler(keywords *services.KeywordService) *KeywordHandler {
	return &KeywordHandler{Keywords: keywords}
}

func (h *KeywordHandler) List(c *gin.Context) {
	keywords, err := h.Keywords.List(auth.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list keywords: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, keywords)
}

func (h *KeywordHandler) Create(c *gin.Context) {
	var req dtos.KeywordCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	keyword, err := h.Keywords.Create(auth.UserID(c), req.Text)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create keyword: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, keyword)
}

func (h *KeywordHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid keyword id"})
		return
	}
	if err := h.Keywords.Delete(auth.UserID(c), uint(id)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
