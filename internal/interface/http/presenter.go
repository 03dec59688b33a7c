package handlers

import (
	"time"

	"github.com/cityride/cityride-backend/internal/domain/entity"
)

// UserResponse is the rider record as the mobile client sees it. The
// password hash is structurally absent. Keys are camelCase per the
// client contract; nullable fields serialize as JSON null.
type UserResponse struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	FirstName         *string   `json:"firstName"`
	LastName          *string   `json:"lastName"`
	Phone             *string   `json:"phone"`
	Address           *string   `json:"address"`
	City              *string   `json:"city"`
	PostalCode        *string   `json:"postalCode"`
	AvatarURL         *string   `json:"avatarUrl"`
	LoyaltyPoints     string    `json:"loyaltyPoints"`
	MarketingConsent  string    `json:"marketingConsent"`
	PushNotifications string    `json:"pushNotifications"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func toUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:                u.ID,
		Email:             u.Email,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		Phone:             u.Phone,
		Address:           u.Address,
		City:              u.City,
		PostalCode:        u.PostalCode,
		AvatarURL:         u.AvatarURL,
		LoyaltyPoints:     u.LoyaltyPoints,
		MarketingConsent:  u.MarketingConsent,
		PushNotifications: u.PushNotifications,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

// AuthResponse is the body of successful register and login calls.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}
