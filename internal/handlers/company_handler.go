package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jobsentry/jobsentry/internal/auth"
	"github.com/jobsentry/jobsentry/internal/dtos"
	"github.com/jobsentry/jobsentry/internal/services"
)

type CompanyHandler struct {
	Companies *services.CompanyService
}

func NewCompanyHandler(companies *services.CompanyService) *CompanyHandler {
	return &CompanyHandler{Companies: companies}
}

func (h *CompanyHandler) List(c *gin.Context) {
	companies, err := h.Companies.List(auth.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list companies: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, companies)
}

func (h *CompanyHandler) Create(c *gin.Context) {
	var req dtos.CompanyCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	company, err := h.Companies.Create(auth.UserID(c), req.Name, req.CareersURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create company: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, company)
}

func (h *CompanyHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company id"})
		return
	}
	if err := h.Companies.Delete(auth.UserID(c), uint(id)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
