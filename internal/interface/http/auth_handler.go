package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/cityride/cityride-backend/internal/application"
	"github.com/cityride/cityride-backend/internal/interface/middleware"
	"github.com/cityride/cityride-backend/pkg/response"
	"github.com/cityride/cityride-backend/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.Service, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`

	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	PostalCode *string `json:"postalCode"`
	AvatarURL  *string `json:"avatarUrl" binding:"omitempty,url"`

	MarketingConsent  *string `json:"marketingConsent"`
	PushNotifications *string `json:"pushNotifications"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /api/auth/register.
// Validation happens entirely before the store is touched.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, http.StatusBadRequest, validation.ToDetails(err))
		return
	}

	u, token, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Email:             req.Email,
		Password:          req.Password,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Phone:             req.Phone,
		Address:           req.Address,
		City:              req.City,
		PostalCode:        req.PostalCode,
		AvatarURL:         req.AvatarURL,
		MarketingConsent:  req.MarketingConsent,
		PushNotifications: req.PushNotifications,
	})
	if err != nil {
		// Registering an existing email reports a distinct message. Login
		// stays generic; this asymmetry mirrors the mobile client's UX.
		if errors.Is(err, application.ErrEmailTaken) {
			response.Message(c, http.StatusBadRequest, "User with this email already exists")
			return
		}
		h.Logger.WithError(err).Error("registration failed")
		response.Message(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{User: toUserResponse(u), Token: token})
}

// Login handles POST /api/auth/login. Unknown email and wrong password
// return the identical body.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, http.StatusBadRequest, validation.ToDetails(err))
		return
	}

	u, token, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			response.Message(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		h.Logger.WithError(err).Error("login failed")
		response.Message(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, AuthResponse{User: toUserResponse(u), Token: token})
}

// Me handles GET /api/auth/me: the gate proved the token, now confirm the
// record still exists.
func (h *AuthHandler) Me(c *gin.Context) {
	uid, _ := middleware.UserIDFromContext(c)
	u, err := h.Svc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Message(c, http.StatusNotFound, "User not found")
			return
		}
		h.Logger.WithError(err).Error("get user failed")
		response.Message(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u))
}
