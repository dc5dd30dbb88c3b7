package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barberpro/internal/domain/catalog"
)

type MeHandler struct {
	repo catalog.Repository
}

func NewMeHandler(repo catalog.Repository) *MeHandler {
	return &MeHandler{repo: repo}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	user, err := h.repo.GetUser(c.Request.Context(), currentShopID(c), currentUserID(c))
	if err != nil {
		respondStore(c, err, "user_not_found", "user not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":       userView(user),
		"barbershop": user.Barbershop,
	})
}
