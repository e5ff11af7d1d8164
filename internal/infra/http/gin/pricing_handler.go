package ginserver

import (
	"fmt"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"stayly/internal/app/dto"
	pricingsvc "stayly/internal/app/pricing"
	propertysvc "stayly/internal/app/properties"
	domainpricing "stayly/internal/domain/pricing"
	domainproperties "stayly/internal/domain/properties"
	"stayly/internal/domain/shared/money"
	domainuser "stayly/internal/domain/user"
)

// PricingHandler exposes price period management to property hosts.
type PricingHandler struct {
	Pricing    *pricingsvc.Service
	Properties *propertysvc.Service
}

type createPeriodRequest struct {
	Name         string `json:"name"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	NightlyCents int64  `json:"nightly_cents"`
}

type updatePeriodRequest struct {
	Name         *string `json:"name"`
	StartDate    *string `json:"start_date"`
	EndDate      *string `json:"end_date"`
	NightlyCents *int64  `json:"nightly_cents"`
}

func (h PricingHandler) ListPeriods(c *gin.Context) {
	property, ok := h.ownedProperty(c)
	if !ok {
		return
	}
	periods, err := h.Pricing.PeriodsForProperty(c.Request.Context(), property.ID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"periods": dto.NewPricePeriodList(periods)})
}

func (h PricingHandler) CreatePeriod(c *gin.Context) {
	property, ok := h.ownedProperty(c)
	if !ok {
		return
	}
	var req createPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date"})
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date"})
		return
	}
	period, err := h.Pricing.CreatePeriod(c.Request.Context(), pricingsvc.CreatePeriodParams{
		PropertyID: property.ID,
		Name:       req.Name,
		Start:      start,
		End:        end,
		Nightly:    money.Money{Amount: req.NightlyCents, Currency: property.BaseNightly.Currency},
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewPricePeriodResponse(period))
}

func (h PricingHandler) UpdatePeriod(c *gin.Context) {
	p, ok := requireRole(c, string(domainuser.RoleHost))
	if !ok {
		return
	}
	if h.Pricing == nil || h.Properties == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "pricing service unavailable"})
		return
	}
	var req updatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	id := domainpricing.PeriodID(c.Param("id"))
	current, err := h.Pricing.PeriodByID(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	property, err := h.Properties.ByID(c.Request.Context(), current.PropertyID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if string(property.Host) != p.ID {
		c.JSON(http.StatusNotFound, gin.H{"error": "price period not found"})
		return
	}

	patch := pricingsvc.UpdatePeriodParams{Name: req.Name}
	if req.StartDate != nil {
		start, err := parseDate(*req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date"})
			return
		}
		patch.Start = &start
	}
	if req.EndDate != nil {
		end, err := parseDate(*req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date"})
			return
		}
		patch.End = &end
	}
	if req.NightlyCents != nil {
		nightly := money.Money{Amount: *req.NightlyCents, Currency: property.BaseNightly.Currency}
		patch.Nightly = &nightly
	}

	period, err := h.Pricing.UpdatePeriod(c.Request.Context(), id, patch)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPricePeriodResponse(period))
}

func (h PricingHandler) DeletePeriod(c *gin.Context) {
	p, ok := requireRole(c, string(domainuser.RoleHost))
	if !ok {
		return
	}
	if h.Pricing == nil || h.Properties == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "pricing service unavailable"})
		return
	}
	id := domainpricing.PeriodID(c.Param("id"))
	current, err := h.Pricing.PeriodByID(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	property, err := h.Properties.ByID(c.Request.Context(), current.PropertyID)
	if err == nil && string(property.Host) != p.ID {
		c.JSON(http.StatusNotFound, gin.H{"error": "price period not found"})
		return
	}
	deleted, err := h.Pricing.DeletePeriod(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// ownedProperty loads the :id property and checks the caller hosts it.
func (h PricingHandler) ownedProperty(c *gin.Context) (*domainproperties.Property, bool) {
	p, ok := requireRole(c, string(domainuser.RoleHost))
	if !ok {
		return nil, false
	}
	if h.Pricing == nil || h.Properties == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "pricing service unavailable"})
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

// parseDate accepts calendar dates and full timestamps; the engine normalizes
// any time-of-day noise to midnight.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unsupported date format %q", raw)
}

var _ PricingHTTP = PricingHandler{}
