package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"stayly/internal/app/dto"
	pricingsvc "stayly/internal/app/pricing"
	propertysvc "stayly/internal/app/properties"
	domainproperties "stayly/internal/domain/properties"
	"stayly/internal/domain/shared/money"
	domainuser "stayly/internal/domain/user"
)

type PropertyHandler struct {
	Properties *propertysvc.Service
	Pricing    *pricingsvc.Service
	Currency   string
}

type createPropertyRequest struct {
	Title            string             `json:"title"`
	Description      string             `json:"description"`
	Address          dto.AddressPayload `json:"address"`
	GuestsLimit      int                `json:"guests_limit"`
	BaseNightlyCents int64              `json:"base_nightly_cents"`
}

type updatePropertyRequest struct {
	Title            *string `json:"title"`
	Description      *string `json:"description"`
	GuestsLimit      *int    `json:"guests_limit"`
	BaseNightlyCents *int64  `json:"base_nightly_cents"`
}

func (h PropertyHandler) List(c *gin.Context) {
	p, ok := requireRole(c, string(domainuser.RoleHost))
	if !ok {
		return
	}
	if h.Properties == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog unavailable"})
		return
	}
	items, err := h.Properties.ByHost(c.Request.Context(), domainproperties.HostID(p.ID))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"properties": dto.NewPropertyList(items)})
}

func (h PropertyHandler) Create(c *gin.Context) {
	p, ok := requireRole(c, string(domainuser.RoleHost))
	if !ok {
		return
	}
	if h.Properties == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog unavailable"})
		return
	}
	var req createPropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	property, err := h.Properties.Create(c.Request.Context(), propertysvc.CreateParams{
		Host:        domainproperties.HostID(p.ID),
		Title:       req.Title,
		Description: req.Description,
		Address: domainproperties.Address{
			Line1:   req.Address.Line1,
			City:    req.Address.City,
			Country: req.Address.Country,
		},
		GuestsLimit: req.GuestsLimit,
		BaseNightly: money.Money{Amount: req.BaseNightlyCents, Currency: h.currency()},
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewPropertyResponse(property))
}

func (h PropertyHandler) Get(c *gin.Context) {
	property, ok := h.owned(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.NewPropertyResponse(property))
}

func (h PropertyHandler) Update(c *gin.Context) {
	property, ok := h.owned(c)
	if !ok {
		return
	}
	var req updatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	patch := propertysvc.UpdateParams{
		Title:       req.Title,
		Description: req.Description,
		GuestsLimit: req.GuestsLimit,
	}
	if req.BaseNightlyCents != nil {
		base := money.Money{Amount: *req.BaseNightlyCents, Currency: property.BaseNightly.Currency}
		patch.BaseNightly = &base
	}
	updated, err := h.Properties.Update(c.Request.Context(), property.ID, patch)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPropertyResponse(updated))
}

func (h PropertyHandler) Delete(c *gin.Context) {
	property, ok := h.owned(c)
	if !ok {
		return
	}
	deleted, err := h.Properties.Delete(c.Request.Context(), property.ID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// Quote prices an arbitrary stay against a property; open to any caller.
func (h PropertyHandler) Quote(c *gin.Context) {
	if h.Pricing == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "pricing unavailable"})
		return
	}
	checkIn, err := parseDate(c.Query("check_in"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid check_in"})
		return
	}
	checkOut, err := parseDate(c.Query("check_out"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid check_out"})
		return
	}
	propertyID := domainproperties.PropertyID(c.Param("id"))
	quote, err := h.Pricing.QuoteStay(c.Request.Context(), propertyID, checkIn, checkOut)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewQuoteResponse(string(propertyID), checkIn, checkOut, quote))
}

func (h PropertyHandler) owned(c *gin.Context) (*domainproperties.Property, bool) {
	p, ok := requireRole(c, string(domainuser.RoleHost))
	if !ok {
		return nil, false
	}
	if h.Properties == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog unavailable"})
		return nil, false
	}
	property, err := h.Properties.ByID(c.Request.Context(), domainproperties.PropertyID(c.Param("id")))
	if err != nil {
		respondDomainError(c, err)
		return nil, false
	}
	if string(property.Host) != p.ID {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return nil, false
	}
	return property, true
}

func (h PropertyHandler) currency() string {
	if h.Currency != "" {
		return h.Currency
	}
	return "USD"
}

var _ PropertyHTTP = PropertyHandler{}
