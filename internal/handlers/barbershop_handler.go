package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barberpro/internal/audit"
	"github.com/BruksfildServices01/barberpro/internal/domain"
	"github.com/BruksfildServices01/barberpro/internal/domain/catalog"
	"github.com/BruksfildServices01/barberpro/internal/httperr"
	"github.com/BruksfildServices01/barberpro/internal/httpresp"
	"github.com/BruksfildServices01/barberpro/internal/timezone"
)

type BarbershopHandler struct {
	repo  catalog.Repository
	audit *audit.Dispatcher
}

func NewBarbershopHandler(repo catalog.Repository, audit *audit.Dispatcher) *BarbershopHandler {
	return &BarbershopHandler{repo: repo, audit: audit}
}

type UpdateBarbershopRequest struct {
	Name             *string `json:"name" binding:"omitempty,min=1,max=100"`
	Slug             *string `json:"slug" binding:"omitempty,min=1,max=100"`
	SubscriptionPlan *string `json:"subscription_plan" binding:"omitempty,max=50"`
	Timezone         *string `json:"timezone"`
	OpensAt          *string `json:"opens_at" binding:"omitempty,hhmm"`
	ClosesAt         *string `json:"closes_at" binding:"omitempty,hhmm"`
	SlotStepMinutes  *int    `json:"slot_step_minutes" binding:"omitempty,min=5,max=240"`
}

func (h *BarbershopHandler) GetMeBarbershop(c *gin.Context) {
	shop, err := h.repo.GetBarbershopByID(c.Request.Context(), currentShopID(c))
	if err != nil {
		respondStore(c, err, "barbershop_not_found", "barbershop not found")
		return
	}

	httpresp.OK(c, shop)
}

func (h *BarbershopHandler) UpdateMeBarbershop(c *gin.Context) {
	shopID := currentShopID(c)

	var req UpdateBarbershopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BindError(c, err)
		return
	}

	shop, err := h.repo.GetBarbershopByID(c.Request.Context(), shopID)
	if err != nil {
		respondStore(c, err, "barbershop_not_found", "barbershop not found")
		return
	}

	if req.Name != nil {
		shop.Name = strings.TrimSpace(*req.Name)
	}
	if req.Slug != nil {
		slug := strings.ToLower(strings.TrimSpace(*req.Slug))
		if !slugRegex.MatchString(slug) {
			httperr.BadRequest(c, "invalid_slug", "slug may only contain lowercase letters, digits and dashes")
			return
		}
		shop.Slug = slug
	}
	if req.SubscriptionPlan != nil {
		shop.SubscriptionPlan = *req.SubscriptionPlan
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "timezone must be an IANA zone name")
			return
		}
		shop.Timezone = *req.Timezone
	}
	if req.OpensAt != nil {
		shop.OpensAt = *req.OpensAt
	}
	if req.ClosesAt != nil {
		shop.ClosesAt = *req.ClosesAt
	}
	if req.SlotStepMinutes != nil {
		shop.SlotStepMinutes = *req.SlotStepMinutes
	}

	if shop.OpensAt != "" && shop.ClosesAt != "" && shop.ClosesAt <= shop.OpensAt {
		httperr.BadRequest(c, "invalid_working_window", "closes_at must be after opens_at")
		return
	}

	if err := h.repo.UpdateBarbershop(c.Request.Context(), shop); err != nil {
		if errors.Is(err, domain.ErrSlugTaken) {
			httperr.BadRequest(c, "slug_already_exists", "this slug is already in use")
			return
		}
		httperr.Respond(c, httperr.ErrStorage(err))
		return
	}

	userID := currentUserID(c)
	h.audit.Dispatch(audit.Event{
		BarbershopID: shopID,
		UserID:       &userID,
		Action:       "barbershop_updated",
		Entity:       "barbershop",
		EntityID:     &shop.ID,
		Metadata:     req,
	})

	httpresp.OK(c, shop)
}

func (h *BarbershopHandler) DeleteMeBarbershop(c *gin.Context) {
	if err := h.repo.DeleteBarbershop(c.Request.Context(), currentShopID(c)); err != nil {
		respondStore(c, err, "barbershop_not_found", "barbershop not found")
		return
	}

	c.Status(http.StatusNoContent)
}
