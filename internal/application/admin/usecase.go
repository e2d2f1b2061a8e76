package admin

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/agrofiscal/mapa-api/internal/application/dto"
	"github.com/agrofiscal/mapa-api/internal/domain"
	"github.com/agrofiscal/mapa-api/internal/domain/entity"
	"github.com/agrofiscal/mapa-api/internal/domain/repository"
)

// AdminUseCase casos de uso de administração: gestão de usuários e bootstrap
// do primeiro administrador.
type AdminUseCase struct {
	userRepo repository.UserRepository
}

// NewAdminUseCase constrói o caso de uso de administração.
func NewAdminUseCase(userRepo repository.UserRepository) *AdminUseCase {
	return &AdminUseCase{userRepo: userRepo}
}

// SetupFirstAdmin cria o primeiro administrador do sistema. Só funciona
// enquanto nenhum admin existir; depois disso devolve ErrForbidden e novos
// admins só podem ser criados por um admin autenticado.
func (uc *AdminUseCase) SetupFirstAdmin(in dto.RegisterRequest) (*dto.UserResponse, error) {
	count, err := uc.userRepo.CountAdmins()
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: já existe um administrador configurado", domain.ErrForbidden)
	}
	return uc.createUser(in.Email, in.Password, in.FullName, in.CompanyName, in.CNPJ, true)
}

// ListUsers lista todos os usuários, paginados.
func (uc *AdminUseCase) ListUsers(page dto.PageRequest) ([]*dto.UserResponse, error) {
	page.DefaultPage()
	users, err := uc.userRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

// GetUser obtém um usuário por ID. Devolve nil quando não existe.
func (uc *AdminUseCase) GetUser(id string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// CreateUser cria um usuário em nome do administrador, podendo conceder
// o flag de admin.
func (uc *AdminUseCase) CreateUser(in dto.AdminCreateUserRequest) (*dto.UserResponse, error) {
	return uc.createUser(in.Email, in.Password, in.FullName, in.CompanyName, in.CNPJ, in.IsAdmin)
}

// UpdateUser atualiza parcialmente um usuário. Campos nil ficam como estão;
// senha fornecida é re-hasheada.
func (uc *AdminUseCase) UpdateUser(id string, in dto.AdminUpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Email != nil && *in.Email != user.Email {
		existing, err := uc.userRepo.GetByEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrEmailAlreadyExists
		}
		user.Email = *in.Email
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if in.FullName != nil {
		user.FullName = *in.FullName
	}
	if in.CompanyName != nil {
		user.CompanyName = *in.CompanyName
	}
	if in.CNPJ != nil {
		user.CNPJ = *in.CNPJ
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if in.IsAdmin != nil {
		user.IsAdmin = *in.IsAdmin
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// DeleteUser remove um usuário. O administrador não pode remover a si mesmo.
func (uc *AdminUseCase) DeleteUser(adminID, id string) error {
	if id == adminID {
		return fmt.Errorf("%w: não é possível deletar o próprio usuário", domain.ErrInvalidInput)
	}
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return uc.userRepo.Delete(id)
}

func (uc *AdminUseCase) createUser(email, password, fullName, companyName, cnpj string, isAdmin bool) (*dto.UserResponse, error) {
	existing, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		CompanyName:  companyName,
		CNPJ:         cnpj,
		IsActive:     true,
		IsAdmin:      isAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		CompanyName: u.CompanyName,
		CNPJ:        u.CNPJ,
		IsActive:    u.IsActive,
		IsAdmin:     u.IsAdmin,
		CreatedAt:   u.CreatedAt,
	}
}
