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
	"github.com/BruksfildServices01/barberpro/internal/models"
	"github.com/BruksfildServices01/barberpro/internal/validators"
)

type ClientHandler struct {
	repo        catalog.Repository
	audit       *audit.Dispatcher
	phoneRegion string
}

func NewClientHandler(repo catalog.Repository, audit *audit.Dispatcher, phoneRegion string) *ClientHandler {
	return &ClientHandler{repo: repo, audit: audit, phoneRegion: phoneRegion}
}

type ClientRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=100"`
	Phone    *string `json:"phone"`
	Nickname *string `json:"nickname" binding:"omitempty,max=50"`
}

// ======================================================
// LIST
// ======================================================

func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.repo.ListClientsByShop(c.Request.Context(), currentShopID(c), c.Query("query"))
	if err != nil {
		httperr.Respond(c, httperr.ErrStorage(err))
		return
	}

	httpresp.List(c, clients)
}

// ======================================================
// CREATE / UPDATE
// ======================================================

func (h *ClientHandler) Create(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BindError(c, err)
		return
	}
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		httperr.BadRequest(c, "client_name_required", "client name is required")
		return
	}

	client := models.Client{BarbershopID: currentShopID(c)}
	if !h.apply(c, &client, req) {
		return
	}

	if err := h.repo.CreateClient(c.Request.Context(), &client); err != nil {
		h.respondWriteErr(c, err)
		return
	}

	h.dispatch(c, "client_created", client.ID)
	c.JSON(http.StatusCreated, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BindError(c, err)
		return
	}

	client, err := h.repo.GetClient(c.Request.Context(), currentShopID(c), id)
	if err != nil {
		respondStore(c, err, "client_not_found", "client not found")
		return
	}

	if !h.apply(c, client, req) {
		return
	}

	if err := h.repo.UpdateClient(c.Request.Context(), client); err != nil {
		h.respondWriteErr(c, err)
		return
	}

	h.dispatch(c, "client_updated", client.ID)
	httpresp.OK(c, client)
}

// Delete removes the client and its appointments.
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.repo.DeleteClient(c.Request.Context(), currentShopID(c), id); err != nil {
		respondStore(c, err, "client_not_found", "client not found")
		return
	}

	h.dispatch(c, "client_deleted", id)
	httpresp.NoContent(c)
}

// apply copies req onto client. An empty phone clears it.
func (h *ClientHandler) apply(c *gin.Context, client *models.Client, req ClientRequest) bool {
	if req.Name != nil {
		client.Name = strings.TrimSpace(*req.Name)
	}
	if req.Nickname != nil {
		client.Nickname = strings.TrimSpace(*req.Nickname)
	}
	if req.Phone != nil {
		if strings.TrimSpace(*req.Phone) == "" {
			client.Phone = nil
			return true
		}
		phone, err := validators.NormalizePhone(*req.Phone, h.phoneRegion)
		if err != nil {
			httperr.BadRequest(c, "invalid_phone", "phone is not a valid phone number")
			return false
		}
		client.Phone = &phone
	}
	return true
}

func (h *ClientHandler) respondWriteErr(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrPhoneTaken) {
		httperr.BadRequest(c, "phone_in_use", "phone number is already registered")
		return
	}
	httperr.Respond(c, httperr.ErrStorage(err))
}

func (h *ClientHandler) dispatch(c *gin.Context, action string, clientID uint) {
	userID := currentUserID(c)
	h.audit.Dispatch(audit.Event{
		BarbershopID: currentShopID(c),
		UserID:       &userID,
		Action:       action,
		Entity:       "client",
		EntityID:     &clientID,
	})
}
