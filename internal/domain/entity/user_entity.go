package entity

import (
	"time"
)

// User is the aggregate root for the rider account. Passwords are stored
// as bcrypt hashes in PasswordHash and never leave the server.
//
// Optional profile fields are pointers so that "never set" round-trips as
// JSON null, matching the mobile client's expectations.
//
// LoyaltyPoints, MarketingConsent and PushNotifications are string-typed
// scalars ("0", "false", "true"): the users table stores them as varchars
// and the client treats them as strings.
type User struct {
	ID           string
	Email        string
	PasswordHash string

	FirstName  *string
	LastName   *string
	Phone      *string
	Address    *string
	City       *string
	PostalCode *string
	AvatarURL  *string

	LoyaltyPoints     string
	MarketingConsent  string
	PushNotifications string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Defaults applied at creation.
const (
	DefaultLoyaltyPoints     = "0"
	DefaultMarketingConsent  = "false"
	DefaultPushNotifications = "true"
)
