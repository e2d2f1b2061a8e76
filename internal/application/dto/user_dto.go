package dto

import "time"

// RegisterRequest entrada de registro (password em texto, hasheada no use case).
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	FullName    string `json:"full_name" validate:"required,min=1,max=200"`
	CompanyName string `json:"company_name" validate:"omitempty,max=200"`
	CNPJ        string `json:"cnpj" validate:"omitempty,len=14"`
}

// LoginRequest entrada de login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest troca de senha do usuário autenticado.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// UserResponse saída de um usuário (sem password).
type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	CompanyName string    `json:"company_name,omitempty"`
	CNPJ        string    `json:"cnpj,omitempty"`
	IsActive    bool      `json:"is_active"`
	IsAdmin     bool      `json:"is_admin"`
	CreatedAt   time.Time `json:"created_at"`
}

// LoginResponse saída com o token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// AdminCreateUserRequest criação de usuário pelo administrador, com controle
// do flag is_admin.
type AdminCreateUserRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	FullName    string `json:"full_name" validate:"required,min=1,max=200"`
	CompanyName string `json:"company_name" validate:"omitempty,max=200"`
	CNPJ        string `json:"cnpj" validate:"omitempty,len=14"`
	IsAdmin     bool   `json:"is_admin"`
}

// AdminUpdateUserRequest atualização parcial de usuário pelo administrador.
// Campos nil não são alterados.
type AdminUpdateUserRequest struct {
	Email       *string `json:"email" validate:"omitempty,email"`
	Password    *string `json:"password" validate:"omitempty,min=8"`
	FullName    *string `json:"full_name" validate:"omitempty,min=1,max=200"`
	CompanyName *string `json:"company_name" validate:"omitempty,max=200"`
	CNPJ        *string `json:"cnpj" validate:"omitempty,len=14"`
	IsActive    *bool   `json:"is_active"`
	IsAdmin     *bool   `json:"is_admin"`
}
