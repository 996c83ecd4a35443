package http

import (
	"net/http"

	"clinic-portal/internal/delivery/http/handler"
	"clinic-portal/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router               *mux.Router
	authHandler          *handler.AuthHandler
	appointmentHandler   *handler.AppointmentHandler
	vitalsHandler        *handler.VitalsHandler
	medicalRecordHandler *handler.MedicalRecordHandler
	prescriptionHandler  *handler.PrescriptionHandler
	doctorHandler        *handler.DoctorHandler
	patientHandler       *handler.PatientHandler
	reportHandler        *handler.ReportHandler
	authMiddleware       *middleware.AuthMiddleware
	corsMiddleware       *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	appointmentHandler *handler.AppointmentHandler,
	vitalsHandler *handler.VitalsHandler,
	medicalRecordHandler *handler.MedicalRecordHandler,
	prescriptionHandler *handler.PrescriptionHandler,
	doctorHandler *handler.DoctorHandler,
	patientHandler *handler.PatientHandler,
	reportHandler *handler.ReportHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:               mux.NewRouter(),
		authHandler:          authHandler,
		appointmentHandler:   appointmentHandler,
		vitalsHandler:        vitalsHandler,
		medicalRecordHandler: medicalRecordHandler,
		prescriptionHandler:  prescriptionHandler,
		doctorHandler:        doctorHandler,
		patientHandler:       patientHandler,
		reportHandler:        reportHandler,
		authMiddleware:       authMiddleware,
		corsMiddleware:       corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.Me).Methods(http.MethodGet)

	// Doctor roster with availability (any authenticated user)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(r.authMiddleware.Authenticate)
	protected.HandleFunc("/doctors/available", r.appointmentHandler.ListAvailableDoctors).Methods(http.MethodGet)

	// Patient routes
	patient := api.PathPrefix("/patient").Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequirePatient)

	patient.HandleFunc("/dashboard", r.patientHandler.Dashboard).Methods(http.MethodGet)
	patient.HandleFunc("/profile", r.patientHandler.GetProfile).Methods(http.MethodGet)
	patient.HandleFunc("/profile", r.patientHandler.UpdateProfile).Methods(http.MethodPut)

	patient.HandleFunc("/appointments", r.appointmentHandler.Book).Methods(http.MethodPost)
	patient.HandleFunc("/appointments", r.appointmentHandler.ListMine).Methods(http.MethodGet)
	patient.HandleFunc("/appointments/upcoming", r.appointmentHandler.ListUpcoming).Methods(http.MethodGet)
	patient.HandleFunc("/appointments/{id}/cancel", r.appointmentHandler.Cancel).Methods(http.MethodPost)

	patient.HandleFunc("/vitals", r.vitalsHandler.Record).Methods(http.MethodPost)
	patient.HandleFunc("/vitals", r.vitalsHandler.History).Methods(http.MethodGet)
	patient.HandleFunc("/vitals/trend", r.vitalsHandler.Trend).Methods(http.MethodGet)

	patient.HandleFunc("/medical-records", r.medicalRecordHandler.ListMine).Methods(http.MethodGet)
	patient.HandleFunc("/prescriptions", r.prescriptionHandler.ListMine).Methods(http.MethodGet)

	patient.HandleFunc("/reports/medical-summary", r.reportHandler.MedicalSummary).Methods(http.MethodGet)
	patient.HandleFunc("/reports/prescriptions/{id}", r.reportHandler.PrescriptionDocument).Methods(http.MethodGet)

	// Doctor routes
	doctor := api.PathPrefix("/doctor").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)

	doctor.HandleFunc("/appointments", r.appointmentHandler.ListForDoctor).Methods(http.MethodGet)
	doctor.HandleFunc("/appointments/{id}/complete", r.appointmentHandler.Complete).Methods(http.MethodPost)
	doctor.HandleFunc("/medical-records", r.medicalRecordHandler.Create).Methods(http.MethodPost)
	doctor.HandleFunc("/medical-records", r.medicalRecordHandler.ListAuthored).Methods(http.MethodGet)
	doctor.HandleFunc("/prescriptions", r.prescriptionHandler.Issue).Methods(http.MethodPost)
	doctor.HandleFunc("/prescriptions/{id}/deactivate", r.prescriptionHandler.Deactivate).Methods(http.MethodPost)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/doctors", r.doctorHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/doctors", r.doctorHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.Get).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.Delete).Methods(http.MethodDelete)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
