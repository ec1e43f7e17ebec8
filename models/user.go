package models

import "time"

const (
	RoleAdmin      = "admin"
	RoleHeadOffice = "headOffice"
	RoleUser       = "user"
)

type User struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Email       string    `json:"email" bson:"email"`
	Role        string    `json:"role" bson:"role"`
	Division    string    `json:"division" bson:"division"`
	Place       string    `json:"place" bson:"place"`
	Address     string    `json:"address" bson:"address"`
	PhoneNumber string    `json:"phone_number" bson:"phone_number"`
	Photo       string    `json:"photo,omitempty" bson:"photo,omitempty"`
	Password    string    `json:"-" bson:"password"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// IsPrivileged: admin dan headOffice boleh melihat peminjaman semua user.
func (u User) IsPrivileged() bool {
	return u.Role == RoleAdmin || u.Role == RoleHeadOffice
}

// RegisterInput adalah body untuk POST /users/register
type RegisterInput struct {
	Name        string `json:"name" validate:"required" example:"Budi"`
	Email       string `json:"email" validate:"required,email" example:"budi@example.com"`
	Password    string `json:"password" validate:"required,min=8" example:"rahasia123"`
	Role        string `json:"role" validate:"omitempty,oneof=admin headOffice user" example:"user"`
	Division    string `json:"division" validate:"required" example:"IT"`
	Place       string `json:"place" validate:"required" example:"Kantor Pusat"`
	Address     string `json:"address" validate:"required" example:"Jl. Merdeka 1"`
	PhoneNumber string `json:"phone_number" validate:"required" example:"08123456789"`
	Photo       string `json:"photo" example:"budi.png"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email" example:"admin@inventara.local"`
	Password string `json:"password" validate:"required,min=8" example:"admin12345"`
}

type Log struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Action    string    `json:"action" bson:"action"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
