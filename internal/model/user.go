package model

import "time"

// Back-office roles.  ADMIN manages the event catalogue and can browse all
// reservations; STAFF can browse reservations but not mutate events.
const (
	RoleAdmin = "ADMIN"
	RoleStaff = "STAFF"
)

// User mirrors the 'users' table.  Only back-office accounts live here;
// visitors book reservations without an account.
type User struct {
	ID           uint64
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
