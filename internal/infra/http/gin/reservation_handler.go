package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"stayly/internal/app/dto"
	reservationsvc "stayly/internal/app/reservations"
	domainproperties "stayly/internal/domain/properties"
	domainreservations "stayly/internal/domain/reservations"
)

type ReservationHandler struct {
	Service *reservationsvc.Service
}

type createReservationRequest struct {
	PropertyID string `json:"property_id"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Guests     int    `json:"guests"`
}

type rescheduleRequest struct {
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
}

func (h ReservationHandler) Create(c *gin.Context) {
	p, ok := requireRole(c, "")
	if !ok {
		return
	}
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "reservations unavailable"})
		return
	}
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid check_in"})
		return
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid check_out"})
		return
	}
	reservation, err := h.Service.Create(c.Request.Context(), reservationsvc.CreateParams{
		PropertyID: domainproperties.PropertyID(req.PropertyID),
		GuestID:    p.ID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     req.Guests,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewReservationResponse(reservation))
}

func (h ReservationHandler) Reschedule(c *gin.Context) {
	p, ok := requireRole(c, "")
	if !ok {
		return
	}
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "reservations unavailable"})
		return
	}
	var req rescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid check_in"})
		return
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid check_out"})
		return
	}
	id := domainreservations.ReservationID(c.Param("id"))
	if !h.ownsReservation(c, id, p.ID) {
		return
	}
	reservation, err := h.Service.Reschedule(c.Request.Context(), id, checkIn, checkOut)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewReservationResponse(reservation))
}

func (h ReservationHandler) Confirm(c *gin.Context) {
	_, ok := requireRole(c, "host")
	if !ok {
		return
	}
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "reservations unavailable"})
		return
	}
	reservation, err := h.Service.Confirm(c.Request.Context(), domainreservations.ReservationID(c.Param("id")))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewReservationResponse(reservation))
}

func (h ReservationHandler) Cancel(c *gin.Context) {
	p, ok := requireRole(c, "")
	if !ok {
		return
	}
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "reservations unavailable"})
		return
	}
	id := domainreservations.ReservationID(c.Param("id"))
	if !h.ownsReservation(c, id, p.ID) {
		return
	}
	reservation, err := h.Service.Cancel(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewReservationResponse(reservation))
}

func (h ReservationHandler) ListMine(c *gin.Context) {
	p, ok := requireRole(c, "")
	if !ok {
		return
	}
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "reservations unavailable"})
		return
	}
	reservations, err := h.Service.ByGuest(c.Request.Context(), p.ID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": dto.NewReservationList(reservations)})
}

func (h ReservationHandler) ownsReservation(c *gin.Context, id domainreservations.ReservationID, guestID string) bool {
	reservation, err := h.Service.Reservations.ByID(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return false
	}
	if reservation.GuestID != guestID {
		c.JSON(http.StatusNotFound, gin.H{"error": "reservation not found"})
		return false
	}
	return true
}

var _ ReservationHTTP = ReservationHandler{}
