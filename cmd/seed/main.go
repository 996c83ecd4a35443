// Command seed populates a development database with an admin account, a
// doctor roster and a handful of demo patients. Existing rows are left
// untouched, so running it twice is safe.
package main

import (
	"fmt"
	"os"
	"time"

	"clinic-portal/config"
	"clinic-portal/internal/domain/entity"
	"clinic-portal/internal/infrastructure/database"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const defaultPassword = "password123"

var specializations = []struct {
	name string
	fee  float64
}{
	{"Cardiology", 150},
	{"Dermatology", 100},
	{"Pediatrics", 80},
	{"Orthopedics", 120},
	{"General Medicine", 60},
}

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db, cfg.DB); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	if err := seed(db); err != nil {
		logrus.Fatalf("Seeding failed: %v", err)
	}
	logrus.Info("Seeding complete")
	os.Exit(0)
}

func seed(db *gorm.DB) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	password := string(hashed)

	return db.Transaction(func(tx *gorm.DB) error {
		if err := seedAdmin(tx, password); err != nil {
			return err
		}
		if err := seedDoctors(tx, password); err != nil {
			return err
		}
		return seedPatients(tx, password)
	})
}

func seedAdmin(tx *gorm.DB, password string) error {
	var count int64
	if err := tx.Model(&entity.User{}).Where("role_id = ?", entity.RoleIDAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logrus.Info("Admin already seeded, skipping")
		return nil
	}

	admin := &entity.User{
		ID:       uuid.New(),
		RoleID:   entity.RoleIDAdmin,
		Email:    "admin@clinic.local",
		Password: password,
		FullName: "Clinic Administrator",
	}
	if err := tx.Create(admin).Error; err != nil {
		return err
	}
	return tx.Create(&entity.AdminProfile{
		UserID:   admin.ID,
		Position: "Operations",
		Title:    "Administrator",
	}).Error
}

func seedDoctors(tx *gorm.DB, password string) error {
	var count int64
	if err := tx.Model(&entity.DoctorProfile{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logrus.Info("Doctors already seeded, skipping")
		return nil
	}

	for i, s := range specializations {
		name := gofakeit.Name()
		user := &entity.User{
			ID:       uuid.New(),
			RoleID:   entity.RoleIDDoctor,
			Email:    fmt.Sprintf("doctor%d@clinic.local", i+1),
			Password: password,
			FullName: "Dr. " + name,
		}
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		profile := &entity.DoctorProfile{
			UserID:          user.ID,
			LicenseNumber:   fmt.Sprintf("LIC-%05d", gofakeit.Number(10000, 99999)),
			Specialization:  s.name,
			Qualification:   "MBBS, MD",
			ExperienceYears: gofakeit.Number(3, 25),
			CurrentHospital: gofakeit.Company() + " Hospital",
			Availability:    "Mon-Fri 09:00-17:00",
			ConsultationFee: decimal.NewFromFloat(s.fee),
		}
		if err := tx.Create(profile).Error; err != nil {
			return err
		}
	}

	logrus.Infof("Seeded %d doctors", len(specializations))
	return nil
}

func seedPatients(tx *gorm.DB, password string) error {
	var count int64
	if err := tx.Model(&entity.PatientProfile{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logrus.Info("Patients already seeded, skipping")
		return nil
	}

	genders := []string{entity.GenderMale, entity.GenderFemale}
	for i := 0; i < 10; i++ {
		user := &entity.User{
			ID:       uuid.New(),
			RoleID:   entity.RoleIDPatient,
			Email:    fmt.Sprintf("patient%d@example.com", i+1),
			Password: password,
			FullName: gofakeit.Name(),
		}
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		dob := gofakeit.DateRange(
			time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2005, 12, 31, 0, 0, 0, 0, time.UTC),
		)
		profile := &entity.PatientProfile{
			UserID:           user.ID,
			NationalID:       fmt.Sprintf("NID-%08d", gofakeit.Number(10000000, 99999999)),
			DateOfBirth:      dob,
			Gender:           genders[i%len(genders)],
			Contact:          gofakeit.Phone(),
			Address:          gofakeit.Address().Address,
			BloodGroup:       gofakeit.RandomString([]string{"A+", "A-", "B+", "B-", "O+", "O-", "AB+", "AB-"}),
			EmergencyContact: gofakeit.Phone(),
		}
		if err := tx.Create(profile).Error; err != nil {
			return err
		}
	}

	logrus.Info("Seeded 10 patients")
	return nil
}
