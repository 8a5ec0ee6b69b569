package model

import "time"

type Role string

const (
	RoleStudent  Role = "Student"
	RoleJobOrder Role = "JobOrder"
	RoleBAO      Role = "BAO"
	RoleAdmin    Role = "Admin"
)

// StaffRoles receive order notifications.
var StaffRoles = []Role{RoleJobOrder, RoleBAO, RoleAdmin}

type User struct {
	ID       string `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Email    string `db:"email" json:"email"`
	Role     Role   `db:"role" json:"role"`
	IsActive bool   `db:"is_active" json:"is_active"`
}

type Notification struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Title     string    `db:"title" json:"title"`
	Message   string    `db:"message" json:"message"`
	IsRead    bool      `db:"is_read" json:"is_read"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
