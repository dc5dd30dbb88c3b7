package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barberpro/internal/dto"
	"github.com/BruksfildServices01/barberpro/internal/httperr"
	"github.com/BruksfildServices01/barberpro/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/barberpro/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create   *ucAppointment.CreateAppointment
	update   *ucAppointment.UpdateAppointment
	complete *ucAppointment.CompleteAppointment
	cancel   *ucAppointment.CancelAppointment
	list     *ucAppointment.ListAppointments
	get      *ucAppointment.GetAppointment
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	update *ucAppointment.UpdateAppointment,
	complete *ucAppointment.CompleteAppointment,
	cancel *ucAppointment.CancelAppointment,
	list *ucAppointment.ListAppointments,
	get *ucAppointment.GetAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:   create,
		update:   update,
		complete: complete,
		cancel:   cancel,
		list:     list,
		get:      get,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID   uint             `json:"client_id" binding:"required"`
	ServiceID  uint             `json:"service_id" binding:"required"`
	Date       string           `json:"date" binding:"required,isodate"`
	Time       string           `json:"time" binding:"required,hhmm"`
	TotalPrice *decimal.Decimal `json:"total_price"`
}

type UpdateAppointmentRequest struct {
	ClientID   *uint            `json:"client_id"`
	ServiceID  *uint            `json:"service_id"`
	Date       *string          `json:"date" binding:"omitempty,isodate"`
	Time       *string          `json:"time" binding:"omitempty,hhmm"`
	Status     *string          `json:"status" binding:"omitempty,oneof=pending completed cancelled"`
	TotalPrice *decimal.Decimal `json:"total_price"`
}

// ======================================================
// CREATE / UPDATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BindError(c, err)
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		BarbershopID: currentShopID(c),
		UserID:       currentUserID(c),
		ClientID:     req.ClientID,
		ServiceID:    req.ServiceID,
		Date:         req.Date,
		Time:         req.Time,
		TotalPrice:   req.TotalPrice,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAppointmentList(*ap))
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BindError(c, err)
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), ucAppointment.UpdateAppointmentInput{
		BarbershopID:  currentShopID(c),
		UserID:        currentUserID(c),
		AppointmentID: id,
		ClientID:      req.ClientID,
		ServiceID:     req.ServiceID,
		Date:          req.Date,
		Time:          req.Time,
		Status:        req.Status,
		TotalPrice:    req.TotalPrice,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.ToAppointmentList(*ap))
}

// ======================================================
// READ
// ======================================================

// List returns appointments newest first. With ?date= only that day is
// listed; ?status= filters otherwise.
func (h *AppointmentHandler) List(c *gin.Context) {
	var (
		out []dto.AppointmentListDTO
		err error
	)

	if date := c.Query("date"); date != "" {
		out, err = h.list.ByDate(c.Request.Context(), currentShopID(c), date)
	} else {
		out, err = h.list.Execute(c.Request.Context(), currentShopID(c), c.Query("status"))
	}
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil {
		httperr.BadRequest(c, "invalid_month", "year and month query parameters are required")
		return
	}

	out, err := h.list.ByMonth(c.Request.Context(), currentShopID(c), year, month)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), currentShopID(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// STATE CHANGES
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), currentShopID(c), currentUserID(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.ToAppointmentList(*ap))
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.complete.Execute(c.Request.Context(), currentShopID(c), currentUserID(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.ToAppointmentList(*ap))
}
