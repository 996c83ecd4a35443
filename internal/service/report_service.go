package service

import (
	"bytes"
	"fmt"

	"clinic-portal/internal/domain/entity"

	"github.com/jung-kurt/gofpdf"
	"github.com/sirupsen/logrus"
)

// ReportService renders patient-facing PDF documents. Layout only; all data
// is loaded and authorized by the calling usecase.
type ReportService struct {
	log *logrus.Logger
}

func NewReportService(log *logrus.Logger) *ReportService {
	return &ReportService{log: log}
}

// MedicalSummary renders a patient overview followed by their most recent
// medical records.
func (s *ReportService) MedicalSummary(patient *entity.PatientProfile, records []entity.MedicalRecord) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(0, 10, "Medical Summary Report")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Patient Information")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Name: %s", patient.User.FullName))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date of Birth: %s | Gender: %s", patient.DateOfBirth.Format("2006-01-02"), patient.Gender))
	pdf.Ln(6)
	bloodGroup := patient.BloodGroup
	if bloodGroup == "" {
		bloodGroup = "N/A"
	}
	pdf.Cell(0, 6, fmt.Sprintf("Blood Group: %s", bloodGroup))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Recent Medical Records")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 9)
	for _, record := range records {
		diagnosis := record.Diagnosis
		if len(diagnosis) > 60 {
			diagnosis = diagnosis[:60]
		}
		pdf.Cell(0, 5, fmt.Sprintf("Date: %s", record.VisitDate.Format("2006-01-02")))
		pdf.Ln(5)
		pdf.Cell(0, 5, fmt.Sprintf("Diagnosis: %s", diagnosis))
		pdf.Ln(5)
		pdf.Cell(0, 5, fmt.Sprintf("Doctor: %s", record.Doctor.User.FullName))
		pdf.Ln(8)
	}

	return s.render(pdf)
}

// PrescriptionDocument renders a single prescription with doctor and patient
// identification.
func (s *ReportService) PrescriptionDocument(prescription *entity.Prescription) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Prescription")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Dr. %s", prescription.Doctor.User.FullName))
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 5, prescription.Doctor.Specialization)
	pdf.Ln(5)
	pdf.Cell(0, 5, fmt.Sprintf("License: %s", prescription.Doctor.LicenseNumber))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, "Patient Information")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 5, fmt.Sprintf("Name: %s", prescription.Patient.User.FullName))
	pdf.Ln(5)
	pdf.Cell(0, 5, fmt.Sprintf("Date: %s", prescription.IssuedAt.Format("2006-01-02")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Medication")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Medication: %s", prescription.Medication))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Dosage: %s", prescription.Dosage))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Frequency: %s", prescription.Frequency))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Duration: %s", prescription.Duration))
	pdf.Ln(6)

	if prescription.Instructions != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Cell(0, 6, "Instructions:")
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 9)
		instructions := prescription.Instructions
		if len(instructions) > 100 {
			instructions = instructions[:100]
		}
		pdf.Cell(0, 5, instructions)
		pdf.Ln(5)
	}

	return s.render(pdf)
}

func (s *ReportService) render(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		s.log.Warnf("Failed to render PDF: %+v", err)
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
