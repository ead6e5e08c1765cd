package http

import (
	"net/http"

	"go-medical-appointment/internal/delivery/http/handler"
	"go-medical-appointment/internal/delivery/http/middleware"
	"go-medical-appointment/pkg/response"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Router struct {
	router                 *mux.Router
	log                    *logrus.Logger
	authHandler            *handler.AuthHandler
	patientHandler         *handler.PatientHandler
	doctorHandler          *handler.DoctorHandler
	specialtyHandler       *handler.SpecialtyHandler
	doctorSpecialtyHandler *handler.DoctorSpecialtyHandler
	appointmentHandler     *handler.AppointmentHandler
	auditLogHandler        *handler.AuditLogHandler
	authMiddleware         *middleware.AuthMiddleware
	corsMiddleware         *middleware.CORSMiddleware
}

func NewRouter(
	log *logrus.Logger,
	authHandler *handler.AuthHandler,
	patientHandler *handler.PatientHandler,
	doctorHandler *handler.DoctorHandler,
	specialtyHandler *handler.SpecialtyHandler,
	doctorSpecialtyHandler *handler.DoctorSpecialtyHandler,
	appointmentHandler *handler.AppointmentHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:                 mux.NewRouter(),
		log:                    log,
		authHandler:            authHandler,
		patientHandler:         patientHandler,
		doctorHandler:          doctorHandler,
		specialtyHandler:       specialtyHandler,
		doctorSpecialtyHandler: doctorSpecialtyHandler,
		appointmentHandler:     appointmentHandler,
		auditLogHandler:        auditLogHandler,
		authMiddleware:         authMiddleware,
		corsMiddleware:         corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	r.router.Use(middleware.RequestID, middleware.AccessLog(r.log), r.corsMiddleware.Handle)

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Clinic routes (any staff account)
	clinic := api.NewRoute().Subrouter()
	clinic.Use(r.authMiddleware.Authenticate, middleware.RequireStaff)

	// Patients
	clinic.HandleFunc("/patients", r.patientHandler.CreatePatient).Methods(http.MethodPost)
	clinic.HandleFunc("/patients", r.patientHandler.GetAllPatients).Methods(http.MethodGet)
	clinic.HandleFunc("/patients/search", r.patientHandler.SearchPatients).Methods(http.MethodGet)
	clinic.HandleFunc("/patients/{id:[0-9]+}", r.patientHandler.GetPatient).Methods(http.MethodGet)
	clinic.HandleFunc("/patients/{id:[0-9]+}", r.patientHandler.UpdatePatient).Methods(http.MethodPut)
	clinic.Handle("/patients/{id:[0-9]+}", adminOnly(r.patientHandler.DeletePatient)).Methods(http.MethodDelete)

	// Doctors
	clinic.HandleFunc("/doctors", r.doctorHandler.CreateDoctor).Methods(http.MethodPost)
	clinic.HandleFunc("/doctors", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)
	clinic.HandleFunc("/doctors/{id:[0-9]+}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	clinic.HandleFunc("/doctors/{id:[0-9]+}", r.doctorHandler.UpdateDoctor).Methods(http.MethodPut)
	clinic.Handle("/doctors/{id:[0-9]+}", adminOnly(r.doctorHandler.DeleteDoctor)).Methods(http.MethodDelete)
	clinic.HandleFunc("/doctors/{id:[0-9]+}/specialties", r.doctorHandler.GetDoctorSpecialties).Methods(http.MethodGet)

	// Specialties
	clinic.HandleFunc("/specialties", r.specialtyHandler.CreateSpecialty).Methods(http.MethodPost)
	clinic.HandleFunc("/specialties", r.specialtyHandler.GetAllSpecialties).Methods(http.MethodGet)
	clinic.HandleFunc("/specialties/{id:[0-9]+}", r.specialtyHandler.GetSpecialty).Methods(http.MethodGet)
	clinic.HandleFunc("/specialties/{id:[0-9]+}", r.specialtyHandler.UpdateSpecialty).Methods(http.MethodPut)
	clinic.Handle("/specialties/{id:[0-9]+}", adminOnly(r.specialtyHandler.DeleteSpecialty)).Methods(http.MethodDelete)

	// Doctor-specialty registry
	clinic.Handle("/doctor-specialties", adminOnly(r.doctorSpecialtyHandler.AssignSpecialty)).Methods(http.MethodPost)
	clinic.Handle("/doctor-specialties", adminOnly(r.doctorSpecialtyHandler.UnassignSpecialty)).Methods(http.MethodDelete)

	// Appointments
	clinic.HandleFunc("/appointments", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	clinic.HandleFunc("/appointments", r.appointmentHandler.ListAppointments).Methods(http.MethodGet)
	clinic.HandleFunc("/appointments/availability", r.appointmentHandler.CheckAvailability).Methods(http.MethodGet)
	clinic.HandleFunc("/appointments/slots", r.appointmentHandler.ListSlots).Methods(http.MethodGet)
	clinic.HandleFunc("/appointments/{id:[0-9]+}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	clinic.HandleFunc("/appointments/{id:[0-9]+}", r.appointmentHandler.UpdateAppointment).Methods(http.MethodPut)
	clinic.Handle("/appointments/{id:[0-9]+}", adminOnly(r.appointmentHandler.DeleteAppointment)).Methods(http.MethodDelete)
	clinic.HandleFunc("/appointments/{id:[0-9]+}/status", r.appointmentHandler.ChangeStatus).Methods(http.MethodPatch)
	clinic.HandleFunc("/appointments/{id:[0-9]+}/cancel", r.appointmentHandler.CancelAppointment).Methods(http.MethodPost)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate, middleware.RequireAdmin)
	admin.HandleFunc("/users", r.authHandler.CreateUser).Methods(http.MethodPost)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id:[0-9]+}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Preflight requests only need the CORS headers.
	r.router.Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	return r.router
}

func adminOnly(h http.HandlerFunc) http.Handler {
	return middleware.RequireAdmin(h)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	response.Success(w, http.StatusOK, "ok", map[string]string{"status": "ok"})
}
