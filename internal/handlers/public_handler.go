package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barberpro/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro/internal/domain/catalog"
	"github.com/BruksfildServices01/barberpro/internal/httperr"
	"github.com/BruksfildServices01/barberpro/internal/httpresp"
	"github.com/BruksfildServices01/barberpro/internal/models"
	ucAppointment "github.com/BruksfildServices01/barberpro/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler serves customers. The shop is always named by the slug in
// the path.
type PublicHandler struct {
	catalog      catalog.Repository
	availability *ucAppointment.GetAvailability
	book         *ucAppointment.Book
	confirmation *ucAppointment.GetConfirmation
}

func NewPublicHandler(
	catalog catalog.Repository,
	availability *ucAppointment.GetAvailability,
	book *ucAppointment.Book,
	confirmation *ucAppointment.GetConfirmation,
) *PublicHandler {
	return &PublicHandler{
		catalog:      catalog,
		availability: availability,
		book:         book,
		confirmation: confirmation,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type BookingRequest struct {
	ClientName  string `json:"client_name" binding:"required,max=100"`
	ClientPhone string `json:"client_phone" binding:"required"`
	Date        string `json:"date" binding:"required,isodate"`
	Time        string `json:"time" binding:"required,hhmm"`
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	shop, ok := h.shopFromSlug(c)
	if !ok {
		return
	}

	services, err := h.catalog.ListServicesByShop(c.Request.Context(), shop.ID)
	if err != nil {
		httperr.Respond(c, httperr.ErrStorage(err))
		return
	}

	httpresp.OK(c, gin.H{
		"barbershop": gin.H{"name": shop.Name, "slug": shop.Slug},
		"services":   services,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	shop, ok := h.shopFromSlug(c)
	if !ok {
		return
	}

	var serviceID uint64
	if raw := c.Query("service_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_service_id", "service_id must be a positive integer")
			return
		}
		serviceID = id
	}

	out, err := h.availability.Execute(c.Request.Context(), appointment.AvailabilityInput{
		BarbershopID: shop.ID,
		ServiceID:    uint(serviceID),
		Date:         c.Query("date"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, out)
}

////////////////////////////////////////////////////////
// BOOKING
////////////////////////////////////////////////////////

func (h *PublicHandler) Book(c *gin.Context) {
	shop, ok := h.shopFromSlug(c)
	if !ok {
		return
	}

	serviceID, ok := idParam(c, "serviceID")
	if !ok {
		return
	}

	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BindError(c, err)
		return
	}

	conf, err := h.book.Execute(c.Request.Context(), ucAppointment.BookInput{
		BarbershopID: shop.ID,
		ServiceID:    serviceID,
		ClientName:   req.ClientName,
		ClientPhone:  req.ClientPhone,
		Date:         req.Date,
		Time:         req.Time,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, "/api/public/bookings/"+conf.Reference, conf)
}

func (h *PublicHandler) Confirmation(c *gin.Context) {
	conf, err := h.confirmation.Execute(c.Request.Context(), c.Param("reference"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, conf)
}

func (h *PublicHandler) shopFromSlug(c *gin.Context) (*models.Barbershop, bool) {
	shop, err := h.catalog.GetBarbershopBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondStore(c, err, "barbershop_not_found", "barbershop not found")
		return nil, false
	}
	return shop, true
}
