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
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DoctorUsecase covers the admin-facing roster management. Doctor accounts
// are created through AuthUsecase.RegisterDoctor.
type DoctorUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	validate   *validator.CustomValidator
	doctorRepo repository.DoctorProfileRepository
	userRepo   repository.UserRepository
	auditSvc   service.AuditService
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	validate *validator.CustomValidator,
	doctorRepo repository.DoctorProfileRepository,
	userRepo repository.UserRepository,
	auditSvc service.AuditService,
) *DoctorUsecase {
	return &DoctorUsecase{
		db:         db,
		log:        log,
		validate:   validate,
		doctorRepo: doctorRepo,
		userRepo:   userRepo,
		auditSvc:   auditSvc,
	}
}

func (u *DoctorUsecase) List(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorProfilesToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

func (u *DoctorUsecase) Get(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return converter.DoctorProfileToResponse(doctor), nil
}

// Update applies the non-empty fields of the request to the doctor's profile
// and user row inside one transaction.
func (u *DoctorUsecase) Update(ctx context.Context, adminID, doctorID uuid.UUID, request *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	if err := u.validate.Validate(request); err != nil {
		return nil, err
	}

	db := u.db.WithContext(ctx)

	doctor, err := u.doctorRepo.FindByUserID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	old := *doctor

	if request.Specialization != "" {
		doctor.Specialization = request.Specialization
	}
	if request.Qualification != "" {
		doctor.Qualification = request.Qualification
	}
	if request.ExperienceYears != nil {
		doctor.ExperienceYears = *request.ExperienceYears
	}
	if request.CurrentHospital != "" {
		doctor.CurrentHospital = request.CurrentHospital
	}
	if request.Availability != "" {
		doctor.Availability = request.Availability
	}
	if request.ConsultationFee != nil {
		doctor.ConsultationFee = decimal.NewFromFloat(*request.ConsultationFee)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if request.FullName != "" {
			doctor.User.FullName = request.FullName
			if err := u.userRepo.Update(tx, &doctor.User); err != nil {
				return err
			}
		}
		if err := u.doctorRepo.Update(tx, doctor); err != nil {
			return err
		}
		return u.auditSvc.LogUpdate(ctx, tx, &adminID, entity.AuditActionDoctorUpdate, "doctor_profiles", doctorID.String(), old, doctor)
	})
	if err != nil {
		u.log.Warnf("Failed to update doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return converter.DoctorProfileToResponse(doctor), nil
}

// Delete deactivates the doctor's login instead of removing rows, so past
// appointments and records keep their references.
func (u *DoctorUsecase) Delete(ctx context.Context, adminID, doctorID uuid.UUID) error {
	db := u.db.WithContext(ctx)

	doctor, err := u.doctorRepo.FindByUserID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}

	if err := u.doctorRepo.Delete(db, doctorID); err != nil {
		u.log.Warnf("Failed to deactivate doctor %s: %+v", doctorID, err)
		return err
	}

	if err := u.auditSvc.LogDelete(ctx, db, &adminID, entity.AuditActionDoctorDelete, "doctor_profiles", doctorID.String(),
		map[string]interface{}{"email": doctor.User.Email}); err != nil {
		u.log.Warnf("Failed to write audit log for doctor delete %s: %+v", doctorID, err)
	}

	return nil
}
