package domain

import (
	"time"
)

const (
	RoleAdmin       = "admin"
	RoleBarista     = "barista"
	RoleAlmacenista = "almacenista"
)

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"nombre"`
	Email        string    `json:"email"`
	Role         string    `json:"rol"`
	Status       string    `json:"estado"`
	PasswordHash string    `json:"-"` // never sent to clients
	CreatedAt    time.Time `json:"fecha"`
}

type CreateUserRequest struct {
	Name     string `json:"nombre" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Role     string `json:"rol" binding:"required,oneof=admin barista almacenista"`
	Password string `json:"password" binding:"required,min=8"`
}

type UpdateUserRequest struct {
	Name   string `json:"nombre" binding:"required"`
	Role   string `json:"rol" binding:"required,oneof=admin barista almacenista"`
	Status string `json:"estado" binding:"required,oneof=Active Inactive"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	User  User   `json:"usuario"`
	Token string `json:"token"`
}
