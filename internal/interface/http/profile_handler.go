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

type ProfileHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewProfileHandler(svc *application.Service, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Svc: svc, Logger: logger}
}

// updateProfileRequest is the partial update. Pointer fields distinguish
// "absent" (nil, leave unchanged) from an explicit value, including "".
// Email and password have no fields here: not mutable through this path.
type updateProfileRequest struct {
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	PostalCode *string `json:"postalCode"`
	AvatarURL  *string `json:"avatarUrl" binding:"omitempty,url"`

	LoyaltyPoints     *string `json:"loyaltyPoints"`
	MarketingConsent  *string `json:"marketingConsent"`
	PushNotifications *string `json:"pushNotifications"`
}

// Get handles GET /api/profile.
func (h *ProfileHandler) Get(c *gin.Context) {
	uid, _ := middleware.UserIDFromContext(c)
	u, err := h.Svc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Message(c, http.StatusNotFound, "User not found")
			return
		}
		h.Logger.WithError(err).Error("get profile failed")
		response.Message(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u))
}

// Update handles PUT /api/profile. Omitted fields stay unchanged;
// updatedAt advances on every successful write.
func (h *ProfileHandler) Update(c *gin.Context) {
	uid, _ := middleware.UserIDFromContext(c)

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, http.StatusBadRequest, validation.ToDetails(err))
		return
	}

	u, err := h.Svc.UpdateProfile(c.Request.Context(), uid, application.UpdateProfileInput{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Phone:             req.Phone,
		Address:           req.Address,
		City:              req.City,
		PostalCode:        req.PostalCode,
		AvatarURL:         req.AvatarURL,
		LoyaltyPoints:     req.LoyaltyPoints,
		MarketingConsent:  req.MarketingConsent,
		PushNotifications: req.PushNotifications,
	})
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Message(c, http.StatusNotFound, "User not found")
			return
		}
		h.Logger.WithError(err).Error("update profile failed")
		response.Message(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, toUserResponse(u))
}

// UploadAvatar handles POST /api/profile/avatar (multipart field "avatar").
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	uid, _ := middleware.UserIDFromContext(c)

	fh, err := c.FormFile("avatar")
	if err != nil {
		response.Message(c, http.StatusBadRequest, "Avatar file is required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Message(c, http.StatusBadRequest, "Avatar file is required")
		return
	}
	defer func() { _ = f.Close() }()

	contentType := fh.Header.Get("Content-Type")
	u, url, err := h.Svc.UploadAvatar(c.Request.Context(), uid, f, fh.Filename, contentType)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Message(c, http.StatusNotFound, "User not found")
			return
		}
		h.Logger.WithError(err).Error("avatar upload failed")
		response.Message(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatarUrl": url, "user": toUserResponse(u)})
}
