package models

import "time"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// User is the profile record; credentials live in Account (1:1 via AccountID).
type User struct {
	ID        int        `json:"id"`
	FullName  string     `json:"full_name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	DOB       *time.Time `json:"dob,omitempty"`
	Gender    Gender     `json:"gender"`
	AccountID int        `json:"-"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type RegisterRequest struct {
	Username           string `json:"username" binding:"required,min=4"`
	Password           string `json:"password" binding:"required"`
	FullName           string `json:"full_name" binding:"required"`
	Email              string `json:"email" binding:"required,email"`
	Phone              string `json:"phone" binding:"required"`
	DOB                string `json:"dob"` // 2006-01-02
	Gender             string `json:"gender"`
	VerificationMethod string `json:"verification_method"` // email|phone, default email
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	DOB      string `json:"dob"`
	Gender   string `json:"gender"`
}
