package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	applisting "github.com/listings/backend/internal/application/listing"
	"github.com/listings/backend/internal/application/mortgage"
)

// PublicHandler handles the unauthenticated catalog surface
type PublicHandler struct {
	BaseHandler
	projects   *applisting.ProjectService
	developers *applisting.DeveloperService
	banks      *applisting.BankService
	locations  *applisting.LocationService
	favorites  *applisting.FavoriteService
}

// NewPublicHandler creates a PublicHandler
func NewPublicHandler(
	projects *applisting.ProjectService,
	developers *applisting.DeveloperService,
	banks *applisting.BankService,
	locations *applisting.LocationService,
	favorites *applisting.FavoriteService,
) *PublicHandler {
	return &PublicHandler{
		projects:   projects,
		developers: developers,
		banks:      banks,
		locations:  locations,
		favorites:  favorites,
	}
}

// RegisterRoutes mounts all public catalog endpoints
func (h *PublicHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/projects", h.ListProjects)
	rg.GET("/projects/map", h.MapProjects)
	rg.GET("/projects/:id", h.GetProject)
	rg.GET("/developers", h.ListDevelopers)
	rg.GET("/developers/:id", h.GetDeveloper)
	rg.GET("/banks", h.ListBanks)
	rg.GET("/cities", h.ListCities)
	rg.GET("/favorites", h.ListFavorites)
	rg.POST("/favorites", h.AddFavorite)
	rg.DELETE("/favorites/:id", h.RemoveFavorite)
	rg.GET("/mortgage/calculate", h.CalculateMortgage)
}

// ListProjects returns visible projects with filters and pagination
func (h *PublicHandler) ListProjects(c *gin.Context) {
	var query applisting.ProjectListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.projects.List(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetProject returns one visible project
func (h *PublicHandler) GetProject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	resp, err := h.projects.GetPublic(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// MapProjects returns visible projects inside a bounding box
func (h *PublicHandler) MapProjects(c *gin.Context) {
	var query applisting.MapQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid bounding box")
		return
	}

	items, err := h.projects.Map(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// ListDevelopers returns active developers
func (h *PublicHandler) ListDevelopers(c *gin.Context) {
	filter, _, ok := listFilter(c)
	if !ok {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.developers.List(c.Request.Context(), filter, false)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetDeveloper returns one developer
func (h *PublicHandler) GetDeveloper(c *gin.Context) {
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

// ListBanks returns active partner banks
func (h *PublicHandler) ListBanks(c *gin.Context) {
	banks, err := h.banks.ListActive(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, banks)
}

// ListCities returns all cities with their districts
func (h *PublicHandler) ListCities(c *gin.Context) {
	cities, err := h.locations.ListCities(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cities)
}

func visitorID(c *gin.Context) (string, bool) {
	id := c.GetHeader(VisitorIDHeader)
	return id, id != ""
}

// ListFavorites returns the visitor's saved projects
func (h *PublicHandler) ListFavorites(c *gin.Context) {
	visitor, ok := visitorID(c)
	if !ok {
		h.BadRequest(c, "Missing "+VisitorIDHeader+" header")
		return
	}

	items, err := h.favorites.List(c.Request.Context(), visitor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// AddFavorite saves a project for the visitor
func (h *PublicHandler) AddFavorite(c *gin.Context) {
	visitor, ok := visitorID(c)
	if !ok {
		h.BadRequest(c, "Missing "+VisitorIDHeader+" header")
		return
	}

	var req struct {
		ProjectID uuid.UUID `json:"project_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid favorite payload")
		return
	}

	if err := h.favorites.Add(c.Request.Context(), visitor, req.ProjectID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, gin.H{"message": "Favorite added"})
}

// RemoveFavorite drops a project from the visitor's favorites
func (h *PublicHandler) RemoveFavorite(c *gin.Context) {
	visitor, ok := visitorID(c)
	if !ok {
		h.BadRequest(c, "Missing "+VisitorIDHeader+" header")
		return
	}
	projectID, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	if err := h.favorites.Remove(c.Request.Context(), visitor, projectID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CalculateMortgage returns an annuity payment summary
func (h *PublicHandler) CalculateMortgage(c *gin.Context) {
	req, err := bindMortgageQuery(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := mortgage.Calculate(req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func bindMortgageQuery(c *gin.Context) (mortgage.CalculateRequest, error) {
	var req mortgage.CalculateRequest
	var err error

	if req.Price, err = decimal.NewFromString(c.Query("price")); err != nil {
		return req, errInvalidParam("price")
	}
	if down := c.Query("down_payment"); down != "" {
		if req.DownPayment, err = decimal.NewFromString(down); err != nil {
			return req, errInvalidParam("down_payment")
		}
	}
	if req.AnnualRate, err = decimal.NewFromString(c.Query("annual_rate")); err != nil {
		return req, errInvalidParam("annual_rate")
	}
	years := c.DefaultQuery("years", "20")
	if req.TermYears, err = parsePositiveInt(years); err != nil {
		return req, errInvalidParam("years")
	}
	return req, nil
}
