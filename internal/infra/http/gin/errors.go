package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	domainpricing "stayly/internal/domain/pricing"
	domainproperties "stayly/internal/domain/properties"
	domainreservations "stayly/internal/domain/reservations"
	"stayly/internal/domain/shared/daterange"
)

// respondDomainError maps expected validation failures to client-facing
// statuses. Range, overlap and not-found errors are deterministic caller
// mistakes, never logged as unexpected.
func respondDomainError(c *gin.Context, err error) {
	var overlap *domainpricing.OverlapError
	switch {
	case errors.As(err, &overlap):
		c.JSON(http.StatusConflict, gin.H{
			"error":              "this period overlaps an existing price period",
			"conflict_period_id": string(overlap.ConflictID),
			"conflict_start":     overlap.ConflictRange.Start,
			"conflict_end":       overlap.ConflictRange.End,
		})
	case errors.Is(err, domainpricing.ErrInvalidRange), errors.Is(err, daterange.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": "start date must precede end date"})
	case errors.Is(err, domainpricing.ErrNegativeRate):
		c.JSON(http.StatusBadRequest, gin.H{"error": "nightly rate must be non-negative"})
	case errors.Is(err, domainproperties.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
	case errors.Is(err, domainpricing.ErrPeriodNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "price period not found"})
	case errors.Is(err, domainreservations.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "reservation not found"})
	case errors.Is(err, domainreservations.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": "reservation state does not allow this action"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
