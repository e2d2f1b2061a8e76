package repository

import "github.com/agrofiscal/mapa-api/internal/domain/entity"

// UserRepository define o porto de persistência para User (DIP).
// A implementação vive em infrastructure.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	List(limit, offset int) ([]*entity.User, error)
	// CountAdmins conta os usuários administradores. Usado para liberar
	// o bootstrap do primeiro admin apenas quando ainda não existe nenhum.
	CountAdmins() (int, error)
	Update(user *entity.User) error
	Delete(id string) error
}
