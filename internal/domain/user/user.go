package user

import (
	"time"

	"github.com/Kartikay-0111/Placify/internal/common"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleCompany Role = "company"
	RoleAdmin   Role = "admin"
)

// User is an account. Role is fixed at registration. Admins belong to the
// college whose placement cell they run.
type User struct {
	ID           common.UUID  `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Role         Role         `json:"role"`
	CollegeID    *common.UUID `json:"college_id,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}
