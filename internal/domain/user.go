package domain

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleSeller  Role = "seller"
	RoleGuest   Role = "guest"
)

// GuestEmail is the identity attached to unauthenticated requests.
const GuestEmail = "invite@example.com"

type User struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Guest returns the anonymous browsing identity.
func Guest() User {
	return User{
		Email: GuestEmail,
		Role:  RoleGuest,
	}
}
