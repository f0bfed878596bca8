package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/DropZone-api/internal/application/dto"
	"github.com/jhoicas/DropZone-api/internal/domain"
	"github.com/jhoicas/DropZone-api/internal/domain/entity"
	"github.com/jhoicas/DropZone-api/internal/domain/repository"
	"github.com/jhoicas/DropZone-api/pkg/jwt"
)

// MinPasswordLength largo mínimo de contraseña.
const MinPasswordLength = 8

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y alta de cuentas de proveedor.
type AuthUseCase struct {
	userRepo     repository.UserRepository
	supplierRepo repository.SupplierRepository
	jwtCfg       JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, supplierRepo repository.SupplierRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, supplierRepo: supplierRepo, jwtCfg: jwtCfg}
}

// RegisterCustomer crea un usuario cliente: hashea password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) RegisterCustomer(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	user, err := uc.newUser(ctx, in.Email, in.Password, in.Name)
	if err != nil {
		return nil, err
	}
	user.Phone = in.Phone
	user.Role = entity.RoleCustomer
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// CreateSupplierUser crea la cuenta de acceso de un proveedor existente (solo admin).
func (uc *AuthUseCase) CreateSupplierUser(ctx context.Context, in dto.CreateSupplierUserRequest) (*dto.UserResponse, error) {
	supplier, err := uc.supplierRepo.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	user, err := uc.newUser(ctx, in.Email, in.Password, in.Name)
	if err != nil {
		return nil, err
	}
	user.Role = entity.RoleSupplier
	user.SupplierID = supplier.ID
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// CreateAdmin crea un usuario admin. Solo se invoca desde el comando de bootstrap, no vía HTTP.
func (uc *AuthUseCase) CreateAdmin(ctx context.Context, email, password, name string) (*dto.UserResponse, error) {
	user, err := uc.newUser(ctx, email, password, name)
	if err != nil {
		return nil, err
	}
	user.Role = entity.RoleAdmin
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (uc *AuthUseCase) newUser(ctx context.Context, email, password, name string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") || len(password) < MinPasswordLength {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
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
	if name == "" {
		name = email
	}
	now := time.Now()
	return &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{
		UserID:     user.ID,
		SupplierID: user.SupplierID,
		Role:       user.Role,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Phone:      u.Phone,
		Role:       u.Role,
		SupplierID: u.SupplierID,
		Status:     u.Status,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
