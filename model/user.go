package model

import "time"

// User is a logged-in session record. Created on successful OTP verification,
// persisted, destroyed on logout. IsPremium is upgradable and never auto-revoked.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	IsPremium bool      `json:"is_premium"`
	JoinDate  time.Time `json:"join_date"`
}

// Contact returns whichever contact channel the session was created with.
func (u *User) Contact() string {
	if u.Email != "" {
		return u.Email
	}
	return u.Phone
}

// RequestOTPReq asks for a one-time code on exactly one contact channel.
// swagger:model RequestOTPReq
type RequestOTPReq struct {
	Channel string `json:"channel" validate:"required,oneof=email phone"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"omitempty,e164"`
}

// VerifyOTPReq carries the code entered for a pending challenge.
// swagger:model VerifyOTPReq
type VerifyOTPReq struct {
	Channel string `json:"channel" validate:"required,oneof=email phone"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"omitempty,e164"`
	Code    string `json:"code" validate:"required,len=6,numeric"`
}

// ContactFor picks the contact matching the channel discriminator.
func ContactFor(channel, email, phone string) string {
	if channel == "phone" {
		return phone
	}
	return email
}
