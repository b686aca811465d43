package model

import "time"

// User is an account holder. Email doubles as the login identity and is
// unique among live users. Hash and Secret are opaque password-recovery
// tokens generated at creation time; ForgotPassword gates whether they can
// currently be redeemed.
type User struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Role           string     `json:"role"`
	ProfilePicture string     `json:"profile_picture"`
	AccountAccess  bool       `json:"account_access"`
	Password       string     `json:"-"`
	Hash           string     `json:"-"`
	Secret         string     `json:"-"`
	ForgotPassword bool       `json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"-"`
}
