package models

import "time"

// Principal is the principals table row.
type Principal struct {
	PrincipalID  string    `db:"principal_id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"` // super_admin, admin or user
	CreatedBy    *string   `db:"created_by"`
	DateJoined   time.Time `db:"date_joined"`
}
