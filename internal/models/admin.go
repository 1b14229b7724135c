package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Administrator owns faculties and signs in to manage the record tree.
// Administrators are created at sign-up and never deleted by this system.
type Administrator struct {
	ID           string    `db:"id" json:"id"`
	FirstName    string    `db:"first_name" json:"firstName"`
	LastName     string    `db:"last_name" json:"lastName"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// JWTClaims are embedded in issued access tokens.
type JWTClaims struct {
	AdminID string `json:"adminId"`
	Email   string `json:"email"`
	jwt.RegisteredClaims
}
