package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barberpro/internal/audit"
	"github.com/BruksfildServices01/barberpro/internal/domain/catalog"
	"github.com/BruksfildServices01/barberpro/internal/httperr"
	"github.com/BruksfildServices01/barberpro/internal/httpresp"
	"github.com/BruksfildServices01/barberpro/internal/models"
)

type ServiceHandler struct {
	repo  catalog.Repository
	audit *audit.Dispatcher
}

func NewServiceHandler(repo catalog.Repository, audit *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{repo: repo, audit: audit}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name            string           `json:"name" binding:"required,max=100"`
	Price           *decimal.Decimal `json:"price" binding:"required"`
	DurationMinutes int              `json:"duration_minutes" binding:"required,min=1,max=720"`
}

type UpdateServiceRequest struct {
	Name            *string          `json:"name" binding:"omitempty,min=1,max=100"`
	Price           *decimal.Decimal `json:"price"`
	DurationMinutes *int             `json:"duration_minutes" binding:"omitempty,min=1,max=720"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	services, err := h.repo.ListServicesByShop(c.Request.Context(), currentShopID(c))
	if err != nil {
		httperr.Respond(c, httperr.ErrStorage(err))
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	shopID := currentShopID(c)

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BindError(c, err)
		return
	}
	if req.Price.IsNegative() {
		httperr.BadRequest(c, "invalid_price", "price cannot be negative")
		return
	}

	svc := models.Service{
		BarbershopID:    shopID,
		Name:            strings.TrimSpace(req.Name),
		Price:           req.Price.Round(2),
		DurationMinutes: req.DurationMinutes,
	}

	if err := h.repo.CreateService(c.Request.Context(), &svc); err != nil {
		httperr.Respond(c, httperr.ErrStorage(err))
		return
	}

	h.dispatch(c, "service_created", svc.ID)
	c.JSON(http.StatusCreated, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	shopID := currentShopID(c)

	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BindError(c, err)
		return
	}

	svc, err := h.repo.GetService(c.Request.Context(), shopID, id)
	if err != nil {
		respondStore(c, err, "service_not_found", "service not found")
		return
	}

	if req.Name != nil {
		svc.Name = strings.TrimSpace(*req.Name)
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			httperr.BadRequest(c, "invalid_price", "price cannot be negative")
			return
		}
		svc.Price = req.Price.Round(2)
	}
	if req.DurationMinutes != nil {
		svc.DurationMinutes = *req.DurationMinutes
	}

	if err := h.repo.UpdateService(c.Request.Context(), svc); err != nil {
		httperr.Respond(c, httperr.ErrStorage(err))
		return
	}

	h.dispatch(c, "service_updated", svc.ID)
	httpresp.OK(c, svc)
}

// Delete removes the service. Its appointments stay, keeping their price.
func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.repo.DeleteService(c.Request.Context(), currentShopID(c), id); err != nil {
		respondStore(c, err, "service_not_found", "service not found")
		return
	}

	h.dispatch(c, "service_deleted", id)
	httpresp.NoContent(c)
}

func (h *ServiceHandler) dispatch(c *gin.Context, action string, serviceID uint) {
	userID := currentUserID(c)
	h.audit.Dispatch(audit.Event{
		BarbershopID: currentShopID(c),
		UserID:       &userID,
		Action:       action,
		Entity:       "service",
		EntityID:     &serviceID,
	})
}
