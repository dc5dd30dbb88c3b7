package handlers

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barberpro/internal/audit"
	"github.com/BruksfildServices01/barberpro/internal/config"
	"github.com/BruksfildServices01/barberpro/internal/domain"
	"github.com/BruksfildServices01/barberpro/internal/domain/catalog"
	"github.com/BruksfildServices01/barberpro/internal/httperr"
	"github.com/BruksfildServices01/barberpro/internal/models"
	"github.com/BruksfildServices01/barberpro/internal/validators"
)

const tokenTTL = 24 * time.Hour

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type AuthHandler struct {
	repo   catalog.Repository
	audit  *audit.Dispatcher
	config *config.Config
}

func NewAuthHandler(repo catalog.Repository, audit *audit.Dispatcher, cfg *config.Config) *AuthHandler {
	return &AuthHandler{repo: repo, audit: audit, config: cfg}
}

// --------- Requests ---------

type RegisterRequest struct {
	BarbershopName string `json:"barbershop_name" binding:"required"`
	BarbershopSlug string `json:"barbershop_slug" binding:"required"`

	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BindError(c, err)
		return
	}

	slug := strings.ToLower(strings.TrimSpace(req.BarbershopSlug))
	if !slugRegex.MatchString(slug) {
		httperr.BadRequest(c, "invalid_slug", "slug may only contain lowercase letters, digits and dashes")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if h.config.CheckEmailDomain {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		ok := validators.IsEmailDomainValid(ctx, email)
		cancel()
		if !ok {
			httperr.BadRequest(c, "invalid_email_domain", "the e-mail domain does not accept mail")
			return
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Respond(c, httperr.ErrStorage(err))
		return
	}

	shop := models.Barbershop{
		Name:             strings.TrimSpace(req.BarbershopName),
		Slug:             slug,
		SubscriptionPlan: "free",
		Timezone:         h.config.DefaultTimezone,
		OpensAt:          h.config.DefaultOpensAt,
		ClosesAt:         h.config.DefaultClosesAt,
		SlotStepMinutes:  h.config.DefaultSlotStepMinutes,
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         models.RoleOwner,
	}

	if err := h.repo.CreateBarbershopWithOwner(c.Request.Context(), &shop, &user); err != nil {
		switch {
		case errors.Is(err, domain.ErrSlugTaken):
			httperr.BadRequest(c, "slug_already_exists", "this slug is already in use")
		case errors.Is(err, domain.ErrEmailTaken):
			httperr.BadRequest(c, "email_already_exists", "this e-mail is already registered")
		default:
			httperr.Respond(c, httperr.ErrStorage(err))
		}
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		httperr.Respond(c, httperr.ErrStorage(err))
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbershopID: shop.ID,
		UserID:       &user.ID,
		Action:       "barbershop_registered",
		Entity:       "barbershop",
		EntityID:     &shop.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"user":       userView(&user),
		"barbershop": shop,
		"token":      token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BindError(c, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.repo.FindUserByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "invalid e-mail or password")
			return
		}
		httperr.Respond(c, httperr.ErrStorage(err))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "invalid e-mail or password")
		return
	}

	token, err := h.generateToken(user)
	if err != nil {
		httperr.Respond(c, httperr.ErrStorage(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  userView(user),
		"token": token,
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":          user.ID,
		"barbershopId": user.BarbershopID,
		"role":         user.Role,
		"exp":          now.Add(tokenTTL).Unix(),
		"iat":          now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}

func userView(u *models.User) gin.H {
	return gin.H{
		"id":            u.ID,
		"name":          u.Name,
		"email":         u.Email,
		"phone":         u.Phone,
		"role":          u.Role,
		"barbershop_id": u.BarbershopID,
	}
}
