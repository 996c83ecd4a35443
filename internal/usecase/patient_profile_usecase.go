package usecase

import (
	"context"

	"clinic-portal/internal/converter"
	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/entity"
	"clinic-portal/internal/domain/repository"
	"clinic-portal/internal/service"
	"clinic-portal/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type PatientProfileUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	validate    *validator.CustomValidator
	patientRepo repository.PatientProfileRepository
	userRepo    repository.UserRepository
	auditSvc    service.AuditService
}

func NewPatientProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	validate *validator.CustomValidator,
	patientRepo repository.PatientProfileRepository,
	userRepo repository.UserRepository,
	auditSvc service.AuditService,
) *PatientProfileUsecase {
	return &PatientProfileUsecase{
		db:          db,
		log:         log,
		validate:    validate,
		patientRepo: patientRepo,
		userRepo:    userRepo,
		auditSvc:    auditSvc,
	}
}

func (u *PatientProfileUsecase) Get(ctx context.Context, patientID uuid.UUID) (*dto.PatientResponse, error) {
	profile, err := u.patientRepo.FindByUserID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile %s: %+v", patientID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientNotFound
	}
	return converter.PatientProfileToResponse(profile), nil
}

// Update applies the editable profile fields and, when a new password is
// supplied, rehashes it. National ID, date of birth and gender are fixed at
// registration.
func (u *PatientProfileUsecase) Update(ctx context.Context, patientID uuid.UUID, request *dto.UpdatePatientProfileRequest) (*dto.PatientResponse, error) {
	if err := u.validate.Validate(request); err != nil {
		return nil, err
	}

	db := u.db.WithContext(ctx)

	profile, err := u.patientRepo.FindByUserID(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile %s: %+v", patientID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientNotFound
	}

	if request.Contact != "" {
		profile.Contact = request.Contact
	}
	if request.Address != "" {
		profile.Address = request.Address
	}
	if request.BloodGroup != "" {
		profile.BloodGroup = request.BloodGroup
	}
	if request.EmergencyContact != "" {
		profile.EmergencyContact = request.EmergencyContact
	}
	if request.ProfilePicture != "" {
		profile.ProfilePicture = request.ProfilePicture
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		userChanged := false
		if request.FullName != "" {
			profile.User.FullName = request.FullName
			userChanged = true
		}
		if request.NewPassword != "" {
			hashed, err := bcrypt.GenerateFromPassword([]byte(request.NewPassword), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			profile.User.Password = string(hashed)
			userChanged = true
		}
		if userChanged {
			if err := u.userRepo.Update(tx, &profile.User); err != nil {
				return err
			}
		}
		if err := u.patientRepo.Update(tx, profile); err != nil {
			return err
		}
		return u.auditSvc.LogUpdate(ctx, tx, &patientID, entity.AuditActionProfileUpdate, "patient_profiles", patientID.String(), nil,
			map[string]interface{}{"contact": profile.Contact, "address": profile.Address})
	})
	if err != nil {
		u.log.Warnf("Failed to update patient profile %s: %+v", patientID, err)
		return nil, err
	}

	return converter.PatientProfileToResponse(profile), nil
}
