package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fondita/fondita-backend/internal/accounts"
	pkgauth "github.com/fondita/fondita-backend/pkg/auth"
	"github.com/fondita/fondita-backend/pkg/config"
	"github.com/fondita/fondita-backend/pkg/db"
	"github.com/fondita/fondita-backend/pkg/db/models"
	"github.com/fondita/fondita-backend/pkg/enums"
	pkgerrors "github.com/fondita/fondita-backend/pkg/errors"
	"github.com/fondita/fondita-backend/pkg/security"
)

const (
	invalidCredentialsMessage = "Credenciales inválidas"
	accountDisabledMessage    = "Cuenta desactivada"
	emailExistsMessage        = "El email ya está registrado"

	loginOKMessage       = "Inicio de sesión exitoso"
	registerOKMessage    = "Usuario registrado exitosamente"
	adminCreatedMessage  = "Administrador creado exitosamente"
	minCustomerPasswords = 6
	minAdminPasswords    = 8
)

// Service defines the behavior needed by the auth controller.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	AdminLogin(ctx context.Context, req LoginRequest) (*AdminLoginResponse, error)
	Register(ctx context.Context, req RegisterRequest) (*LoginResponse, error)
	CreateAdmin(ctx context.Context, actorRole enums.AdminRole, req CreateAdminRequest) (*CreateAdminResponse, error)
	VerifyToken(ctx context.Context, rawToken string) (*VerifyResponse, error)
}

type customerRepository interface {
	Create(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	FindByEmail(ctx context.Context, email string) (*models.Customer, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	TouchLastAccess(ctx context.Context, id uuid.UUID, at time.Time) error
}

type adminRepository interface {
	Create(ctx context.Context, admin *models.Admin) (*models.Admin, error)
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Admin, error)
	TouchLastAccess(ctx context.Context, id uuid.UUID, at time.Time) error
}

type warnLogger interface {
	Warn(ctx context.Context, msg string)
}

type service struct {
	customers customerRepository
	admins    adminRepository
	jwtCfg    config.JWTConfig
	pwCfg     config.PasswordConfig
	logg      warnLogger
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	CustomerRepo   customerRepository
	AdminRepo      adminRepository
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
	Logger         warnLogger
}

// NewService constructs the auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.CustomerRepo == nil {
		return nil, fmt.Errorf("customer repository is required")
	}
	if params.AdminRepo == nil {
		return nil, fmt.Errorf("admin repository is required")
	}
	return &service{
		customers: params.CustomerRepo,
		admins:    params.AdminRepo,
		jwtCfg:    params.JWTConfig,
		pwCfg:     params.PasswordConfig,
		logg:      params.Logger,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	customer, err := s.customers.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeInvalidCredentials, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup customer")
	}

	// Deactivation is surfaced before the password check so a disabled account
	// gets a distinct answer even with the right credentials.
	if !customer.Active {
		return nil, pkgerrors.New(pkgerrors.CodeAccountDisabled, accountDisabledMessage)
	}

	if err := s.verifyPassword(req.Password, customer.PasswordHash); err != nil {
		return nil, err
	}

	now := s.touchCustomer(ctx, customer)

	token, err := pkgauth.Mint(s.jwtCfg, now, pkgauth.TokenPayload{
		SubjectID: customer.ID,
		Email:     customer.Email,
		Role:      customer.Role,
		Kind:      enums.TokenKindCustomer,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	return &LoginResponse{
		Message: loginOKMessage,
		Token:   token,
		User:    accounts.SafeCustomerFromModel(customer),
	}, nil
}

func (s *service) AdminLogin(ctx context.Context, req LoginRequest) (*AdminLoginResponse, error) {
	admin, err := s.admins.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeInvalidCredentials, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup admin")
	}

	if !admin.Active {
		return nil, pkgerrors.New(pkgerrors.CodeAccountDisabled, accountDisabledMessage)
	}

	if err := s.verifyPassword(req.Password, admin.PasswordHash); err != nil {
		return nil, err
	}

	now := s.touchAdmin(ctx, admin)

	token, err := pkgauth.Mint(s.jwtCfg, now, pkgauth.TokenPayload{
		SubjectID: admin.ID,
		Email:     admin.Email,
		Role:      admin.Role.String(),
		Kind:      enums.TokenKindAdmin,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	return &AdminLoginResponse{
		Message: loginOKMessage,
		Token:   token,
		Admin:   accounts.SafeAdminFromModel(admin),
	}, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*LoginResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "El nombre es requerido")
	}
	if len(req.Password) < minCustomerPasswords {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("La contraseña debe tener al menos %d caracteres", minCustomerPasswords))
	}

	if _, err := s.customers.FindByEmail(ctx, req.Email); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeEmailExists, emailExistsMessage)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup customer")
	}

	hash, err := security.HashPassword(req.Password, s.pwCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	customer, err := s.customers.Create(ctx, &models.Customer{
		Name:         name,
		Email:        req.Email,
		PasswordHash: hash,
		Phone:        req.Phone,
		Address:      req.Address,
		Role:         enums.CustomerRole,
		Active:       true,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeEmailExists, emailExistsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create customer")
	}

	token, err := pkgauth.Mint(s.jwtCfg, time.Now().UTC(), pkgauth.TokenPayload{
		SubjectID: customer.ID,
		Email:     customer.Email,
		Role:      customer.Role,
		Kind:      enums.TokenKindCustomer,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	return &LoginResponse{
		Message: registerOKMessage,
		Token:   token,
		User:    accounts.SafeCustomerFromModel(customer),
	}, nil
}

func (s *service) CreateAdmin(ctx context.Context, actorRole enums.AdminRole, req CreateAdminRequest) (*CreateAdminResponse, error) {
	if actorRole != enums.AdminRoleSuperAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeInsufficientPermissions,
			"Solo un super administrador puede crear administradores")
	}

	if strings.TrimSpace(req.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "El nombre es requerido")
	}
	if len(req.Password) < minAdminPasswords {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("La contraseña debe tener al menos %d caracteres", minAdminPasswords))
	}

	role := enums.AdminRoleAdmin
	if req.Role != "" {
		parsed, err := enums.ParseAdminRole(req.Role)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Rol de administrador inválido")
		}
		role = parsed
	}

	if _, err := s.admins.FindByEmail(ctx, req.Email); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeEmailExists, emailExistsMessage)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup admin")
	}

	hash, err := security.HashPassword(req.Password, s.pwCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	admin, err := s.admins.Create(ctx, &models.Admin{
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeEmailExists, emailExistsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create admin")
	}

	return &CreateAdminResponse{
		Message: adminCreatedMessage,
		Admin:   accounts.SafeAdminFromModel(admin),
	}, nil
}

// VerifyToken resolves a raw bearer token against the admin namespace first,
// then the customer namespace.
func (s *service) VerifyToken(ctx context.Context, rawToken string) (*VerifyResponse, error) {
	if adminClaims, err := pkgauth.Parse(s.jwtCfg, rawToken, enums.TokenKindAdmin); err == nil {
		adminID, err := adminClaims.SubjectID()
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeInvalidToken, "Token inválido")
		}
		admin, err := s.admins.FindByID(ctx, adminID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeInvalidToken, "Token inválido")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup admin")
		}
		if !admin.Active {
			return nil, pkgerrors.New(pkgerrors.CodeAdminInactive, "Cuenta de administrador desactivada")
		}
		return &VerifyResponse{
			Valid: true,
			User:  accounts.SafeAdminFromModel(admin),
			Type:  enums.TokenKindAdmin.String(),
		}, nil
	}

	customerClaims, err := pkgauth.Parse(s.jwtCfg, rawToken, enums.TokenKindCustomer)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, pkgerrors.New(pkgerrors.CodeExpiredToken, "Token expirado")
		}
		return nil, pkgerrors.New(pkgerrors.CodeInvalidToken, "Token inválido")
	}

	customerID, err := customerClaims.SubjectID()
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidToken, "Token inválido")
	}
	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeInvalidToken, "Token inválido")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup customer")
	}
	if !customer.Active {
		return nil, pkgerrors.New(pkgerrors.CodeAccountDisabled, accountDisabledMessage)
	}

	return &VerifyResponse{
		Valid: true,
		User:  accounts.SafeCustomerFromModel(customer),
		Type:  enums.TokenKindCustomer.String(),
	}, nil
}

func (s *service) verifyPassword(password, hash string) error {
	valid, err := security.VerifyPassword(password, hash)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return pkgerrors.New(pkgerrors.CodeInvalidCredentials, invalidCredentialsMessage)
	}
	return nil
}

// touchCustomer stamps ultimo_acceso best-effort; login proceeds on failure.
func (s *service) touchCustomer(ctx context.Context, customer *models.Customer) time.Time {
	now := time.Now().UTC()
	if err := s.customers.TouchLastAccess(ctx, customer.ID, now); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "failed to update ultimo_acceso")
	}
	customer.LastAccessAt = &now
	return now
}

func (s *service) touchAdmin(ctx context.Context, admin *models.Admin) time.Time {
	now := time.Now().UTC()
	if err := s.admins.TouchLastAccess(ctx, admin.ID, now); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "failed to update ultimo_acceso")
	}
	admin.LastAccessAt = &now
	return now
}
