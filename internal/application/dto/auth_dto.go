package dto

import "time"

// LoginRequest entrada de login del panel de administración.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse vista segura de un usuario (sin hash de password).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"nombre"`
	IsAdmin   bool      `json:"es_administrador"`
	CreatedAt time.Time `json:"creado_en"`
}

// LoginResponse token JWT + usuario.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
