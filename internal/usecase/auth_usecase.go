package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinic-portal/internal/converter"
	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/entity"
	"clinic-portal/internal/domain/repository"
	"clinic-portal/internal/service"
	"clinic-portal/pkg/jwt"
	"clinic-portal/pkg/validator"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrNationalIDTaken    = errors.New("national id is already registered")
	ErrLicenseTaken       = errors.New("license number is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is deactivated")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
)

// Issued tokens are stored in Redis keyed by user and token ID. A token that
// is missing from Redis is treated as revoked, so logout is a delete and a
// flushed cache only forces re-login.
const (
	accessTokenKeyFormat  = "access_token:%s:%s"
	refreshTokenKeyFormat = "refresh_token:%s:%s"
)

type AuthUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	validate    *validator.CustomValidator
	jwtService  *jwt.JWTService
	redisClient *redis.Client
	userRepo    repository.UserRepository
	patientRepo repository.PatientProfileRepository
	doctorRepo  repository.DoctorProfileRepository
	auditSvc    service.AuditService
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	validate *validator.CustomValidator,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
	userRepo repository.UserRepository,
	patientRepo repository.PatientProfileRepository,
	doctorRepo repository.DoctorProfileRepository,
	auditSvc service.AuditService,
) *AuthUsecase {
	return &AuthUsecase{
		db:          db,
		log:         log,
		validate:    validate,
		jwtService:  jwtService,
		redisClient: redisClient,
		userRepo:    userRepo,
		patientRepo: patientRepo,
		doctorRepo:  doctorRepo,
		auditSvc:    auditSvc,
	}
}

// RegisterPatient creates the user row and its patient profile in one
// transaction. Password is stored as a bcrypt hash, never plaintext.
func (u *AuthUsecase) RegisterPatient(ctx context.Context, request *dto.RegisterPatientRequest) (*dto.UserResponse, error) {
	if err := u.validate.Validate(request); err != nil {
		return nil, err
	}

	dateOfBirth, err := time.Parse("2006-01-02", request.DateOfBirth)
	if err != nil {
		return nil, ErrInvalidDate
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		ID:       uuid.New(),
		RoleID:   entity.RoleIDPatient,
		Email:    request.Email,
		Password: string(hashed),
		FullName: request.FullName,
	}
	profile := &entity.PatientProfile{
		UserID:           user.ID,
		NationalID:       request.NationalID,
		DateOfBirth:      dateOfBirth,
		Gender:           request.Gender,
		Contact:          request.Contact,
		Address:          request.Address,
		BloodGroup:       request.BloodGroup,
		EmergencyContact: request.EmergencyContact,
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.userRepo.Create(tx, user); err != nil {
			return err
		}
		if err := u.patientRepo.Create(tx, profile); err != nil {
			return err
		}
		return u.auditSvc.LogCreate(ctx, tx, &user.ID, entity.AuditActionUserRegister, "users", user.ID.String(),
			map[string]interface{}{"email": user.Email, "role": entity.RolePatient})
	})
	if err != nil {
		if isDuplicateKeyError(err, "users_email") || isDuplicateKeyError(err, "uni_users_email") {
			return nil, ErrEmailTaken
		}
		if isDuplicateKeyError(err, "national_id") {
			return nil, ErrNationalIDTaken
		}
		u.log.Warnf("Failed to register patient: %+v", err)
		return nil, err
	}

	user.Role = entity.Role{ID: entity.RoleIDPatient, RoleName: entity.RolePatient}
	user.PatientProfile = profile
	return converter.UserToResponse(user), nil
}

// RegisterDoctor creates a doctor account. Reachable only by admins.
func (u *AuthUsecase) RegisterDoctor(ctx context.Context, adminID uuid.UUID, request *dto.RegisterDoctorRequest) (*dto.UserResponse, error) {
	if err := u.validate.Validate(request); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		ID:       uuid.New(),
		RoleID:   entity.RoleIDDoctor,
		Email:    request.Email,
		Password: string(hashed),
		FullName: request.FullName,
	}
	profile := &entity.DoctorProfile{
		UserID:          user.ID,
		LicenseNumber:   request.LicenseNumber,
		Specialization:  request.Specialization,
		Qualification:   request.Qualification,
		ExperienceYears: request.ExperienceYears,
		CurrentHospital: request.CurrentHospital,
		Availability:    request.Availability,
		ConsultationFee: decimal.NewFromFloat(request.ConsultationFee),
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.userRepo.Create(tx, user); err != nil {
			return err
		}
		if err := u.doctorRepo.Create(tx, profile); err != nil {
			return err
		}
		return u.auditSvc.LogCreate(ctx, tx, &adminID, entity.AuditActionDoctorCreate, "users", user.ID.String(),
			map[string]interface{}{"email": user.Email, "license_number": profile.LicenseNumber})
	})
	if err != nil {
		if isDuplicateKeyError(err, "users_email") || isDuplicateKeyError(err, "uni_users_email") {
			return nil, ErrEmailTaken
		}
		if isDuplicateKeyError(err, "license_number") {
			return nil, ErrLicenseTaken
		}
		u.log.Warnf("Failed to register doctor: %+v", err)
		return nil, err
	}

	user.Role = entity.Role{ID: entity.RoleIDDoctor, RoleName: entity.RoleDoctor}
	user.DoctorProfile = profile
	return converter.UserToResponse(user), nil
}

// Login verifies credentials and issues an access/refresh token pair.
func (u *AuthUsecase) Login(ctx context.Context, request *dto.LoginRequest) (*dto.TokenResponse, error) {
	if err := u.validate.Validate(request); err != nil {
		return nil, err
	}

	user, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), request.Email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(request.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.IsActive == nil || !*user.IsActive {
		return nil, ErrAccountDisabled
	}

	return u.issueTokens(ctx, user)
}

// RefreshToken exchanges a valid refresh token for a new pair. The spent
// refresh token is deleted from Redis so it cannot be replayed.
func (u *AuthUsecase) RefreshToken(ctx context.Context, request *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	if err := u.validate.Validate(request); err != nil {
		return nil, err
	}

	claims, err := u.jwtService.ValidateToken(request.RefreshToken)
	if err != nil || claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	refreshKey := fmt.Sprintf(refreshTokenKeyFormat, claims.UserID, claims.TokenID)
	exists, err := u.redisClient.Exists(ctx, refreshKey).Result()
	if err != nil {
		u.log.Warnf("Failed to check refresh token: %+v", err)
		return nil, err
	}
	if exists == 0 {
		return nil, ErrInvalidToken
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.IsActive == nil || !*user.IsActive {
		return nil, ErrInvalidToken
	}

	if err := u.redisClient.Del(ctx, refreshKey).Err(); err != nil {
		u.log.Warnf("Failed to delete spent refresh token %s: %+v", claims.TokenID, err)
	}

	return u.issueTokens(ctx, user)
}

// Logout drops the caller's access token from Redis, which immediately
// invalidates it on the auth middleware.
func (u *AuthUsecase) Logout(ctx context.Context, claims *jwt.Claims) error {
	key := fmt.Sprintf(accessTokenKeyFormat, claims.UserID, claims.TokenID)
	return u.redisClient.Del(ctx, key).Err()
}

// GetCurrentUser loads the authenticated user with its role profile.
func (u *AuthUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", userID, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return converter.UserToResponse(user), nil
}

func (u *AuthUsecase) issueTokens(ctx context.Context, user *entity.User) (*dto.TokenResponse, error) {
	accessToken, accessID, err := u.jwtService.GenerateAccessToken(user.ID, user.Email, user.RoleID)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}
	refreshToken, refreshID, err := u.jwtService.GenerateRefreshToken(user.ID, user.Email, user.RoleID)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	accessKey := fmt.Sprintf(accessTokenKeyFormat, user.ID, accessID)
	if err := u.redisClient.Set(ctx, accessKey, "1", u.jwtService.GetAccessExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store access token: %+v", err)
		return nil, err
	}
	refreshKey := fmt.Sprintf(refreshTokenKeyFormat, user.ID, refreshID)
	if err := u.redisClient.Set(ctx, refreshKey, "1", u.jwtService.GetRefreshExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store refresh token: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}
