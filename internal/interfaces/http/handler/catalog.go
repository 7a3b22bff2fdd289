package handler

import (
	"github.com/gin-gonic/gin"

	applisting "github.com/listings/backend/internal/application/listing"
	"github.com/listings/backend/internal/domain/shared"
	"github.com/listings/backend/internal/interfaces/http/dto"
)

// CatalogHandler handles admin endpoints for developers, banks, and
// the city/district tree.
type CatalogHandler struct {
	BaseHandler
	developers *applisting.DeveloperService
	banks      *applisting.BankService
	locations  *applisting.LocationService
}

// NewCatalogHandler creates a CatalogHandler
func NewCatalogHandler(developers *applisting.DeveloperService, banks *applisting.BankService, locations *applisting.LocationService) *CatalogHandler {
	return &CatalogHandler{developers: developers, banks: banks, locations: locations}
}

// RegisterRoutes mounts catalog endpoints on the admin group
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/developers", h.CreateDeveloper)
	rg.GET("/developers", h.ListDevelopers)
	rg.GET("/developers/:id", h.GetDeveloper)
	rg.PUT("/developers/:id", h.UpdateDeveloper)
	rg.DELETE("/developers/:id", h.DeleteDeveloper)
	rg.POST("/developers/:id/restore", h.RestoreDeveloper)

	rg.POST("/banks", h.CreateBank)
	rg.GET("/banks", h.ListBanks)
	rg.GET("/banks/:id", h.GetBank)
	rg.PUT("/banks/:id", h.UpdateBank)
	rg.DELETE("/banks/:id", h.DeleteBank)
	rg.POST("/banks/:id/restore", h.RestoreBank)

	rg.POST("/cities", h.CreateCity)
	rg.GET("/cities", h.ListCities)
	rg.POST("/districts", h.CreateDistrict)
}

func listFilter(c *gin.Context) (shared.Filter, bool, bool) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return shared.Filter{}, false, false
	}
	filter := shared.DefaultFilter()
	filter.Page = req.Page
	filter.PageSize = req.PageSize
	filter.Search = req.Search
	return filter, c.Query("include_deleted") == "true", true
}

// CreateDeveloper adds a new developer
func (h *CatalogHandler) CreateDeveloper(c *gin.Context) {
	var req applisting.DeveloperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid developer payload: "+err.Error())
		return
	}
	resp, err := h.developers.Create(c.Request.Context(), req, adminID(c), c.ClientIP())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListDevelopers returns developers, optionally including deleted ones
func (h *CatalogHandler) ListDevelopers(c *gin.Context) {
	filter, includeDeleted, ok := listFilter(c)
	if !ok {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	result, err := h.developers.List(c.Request.Context(), filter, includeDeleted)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetDeveloper returns one developer
func (h *CatalogHandler) GetDeveloper(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid developer ID")
		return
	}
	resp, err := h.developers.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateDeveloper replaces a developer's editable fields
func (h *CatalogHandler) UpdateDeveloper(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid developer ID")
		return
	}
	var req applisting.DeveloperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid developer payload: "+err.Error())
		return
	}
	resp, err := h.developers.Update(c.Request.Context(), id, req, adminID(c), c.ClientIP())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteDeveloper soft-deletes a developer
func (h *CatalogHandler) DeleteDeveloper(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid developer ID")
		return
	}
	if err := h.developers.Delete(c.Request.Context(), id, adminID(c), c.ClientIP()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RestoreDeveloper clears a developer's soft delete
func (h *CatalogHandler) RestoreDeveloper(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid developer ID")
		return
	}
	if err := h.developers.Restore(c.Request.Context(), id, adminID(c), c.ClientIP()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Developer restored"})
}

// CreateBank adds a new partner bank
func (h *CatalogHandler) CreateBank(c *gin.Context) {
	var req applisting.BankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid bank payload: "+err.Error())
		return
	}
	resp, err := h.banks.Create(c.Request.Context(), req, adminID(c), c.ClientIP())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListBanks returns banks, optionally including deleted ones
func (h *CatalogHandler) ListBanks(c *gin.Context) {
	filter, includeDeleted, ok := listFilter(c)
	if !ok {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	result, err := h.banks.List(c.Request.Context(), filter, includeDeleted)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetBank returns one bank
func (h *CatalogHandler) GetBank(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid bank ID")
		return
	}
	resp, err := h.banks.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateBank replaces a bank's editable fields
func (h *CatalogHandler) UpdateBank(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid bank ID")
		return
	}
	var req applisting.BankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid bank payload: "+err.Error())
		return
	}
	resp, err := h.banks.Update(c.Request.Context(), id, req, adminID(c), c.ClientIP())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteBank soft-deletes a bank
func (h *CatalogHandler) DeleteBank(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid bank ID")
		return
	}
	if err := h.banks.Delete(c.Request.Context(), id, adminID(c), c.ClientIP()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RestoreBank clears a bank's soft delete
func (h *CatalogHandler) RestoreBank(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid bank ID")
		return
	}
	if err := h.banks.Restore(c.Request.Context(), id, adminID(c), c.ClientIP()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Bank restored"})
}

// CreateCity adds a city
func (h *CatalogHandler) CreateCity(c *gin.Context) {
	var req applisting.CityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid city payload: "+err.Error())
		return
	}
	resp, err := h.locations.CreateCity(c.Request.Context(), req, adminID(c), c.ClientIP())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListCities returns all cities with their districts
func (h *CatalogHandler) ListCities(c *gin.Context) {
	cities, err := h.locations.ListCities(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cities)
}

// CreateDistrict adds a district to a city
func (h *CatalogHandler) CreateDistrict(c *gin.Context) {
	var req applisting.DistrictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid district payload: "+err.Error())
		return
	}
	resp, err := h.locations.CreateDistrict(c.Request.Context(), req, adminID(c), c.ClientIP())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}
