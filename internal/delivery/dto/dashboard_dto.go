package dto

type DashboardResponse struct {
	Patient              PatientResponse        `json:"patient"`
	UpcomingAppointments []AppointmentResponse  `json:"upcoming_appointments"`
	RecentRecords        []MedicalRecordResponse `json:"recent_records"`
	LatestVitals         *VitalsResponse        `json:"latest_vitals"`
	VitalAlerts          []AlertFindingResponse `json:"vital_alerts"`
	ActivePrescriptions  []PrescriptionResponse `json:"active_prescriptions"`
}
