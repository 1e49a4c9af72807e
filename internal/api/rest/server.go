package rest

import (
	"github.com/gorilla/mux"

	"louercar-backend/internal/repository"
	"louercar-backend/internal/security"
	"louercar-backend/internal/service"
)

// Server wires the HTTP surface to the service layer.
type Server struct {
	auth     service.AuthService
	users    service.UserService
	cars     service.CarService
	rentals  service.RentalService
	payments service.PaymentService
	tags     service.TagService
	notes    service.NotificationService
	tokens   security.TokenManager
	userRepo repository.UserRepository
}

func NewServer(
	auth service.AuthService,
	users service.UserService,
	cars service.CarService,
	rentals service.RentalService,
	payments service.PaymentService,
	tags service.TagService,
	notes service.NotificationService,
	tokens security.TokenManager,
	userRepo repository.UserRepository,
) *Server {
	return &Server{
		auth:     auth,
		users:    users,
		cars:     cars,
		rentals:  rentals,
		payments: payments,
		tags:     tags,
		notes:    notes,
		tokens:   tokens,
		userRepo: userRepo,
	}
}

// Router builds the full route table. Everything except registration,
// login and token refresh sits behind authentication.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/register", s.handleRegister).Methods("POST")
	api.HandleFunc("/auth/login", s.handleLogin).Methods("POST")
	api.HandleFunc("/auth/refresh", s.handleRefresh).Methods("POST")

	auth := api.NewRoute().Subrouter()
	auth.Use(s.requireAuth)

	auth.HandleFunc("/me", s.handleMe).Methods("GET")
	auth.HandleFunc("/me/profile", s.handleGetProfile).Methods("GET")
	auth.HandleFunc("/me/profile", s.handleUpdateProfile).Methods("PUT")
	auth.HandleFunc("/me/requests", s.handleMyRequests).Methods("GET")
	auth.HandleFunc("/me/rentals", s.handleMyRentals).Methods("GET")
	auth.HandleFunc("/me/payments", s.handleMyPayments).Methods("GET")
	auth.HandleFunc("/me/groups", s.handleVisibleGroups).Methods("GET")
	auth.HandleFunc("/me/notifications", s.handleNotifications).Methods("GET")
	auth.HandleFunc("/me/notifications/{id:[0-9]+}/read", s.handleMarkNotificationRead).Methods("POST")

	auth.HandleFunc("/cars", s.handleListCars).Methods("GET")
	auth.HandleFunc("/cars/{id:[0-9]+}", s.handleGetCar).Methods("GET")

	auth.HandleFunc("/requests", s.handleSubmitRequest).Methods("POST")
	auth.HandleFunc("/requests/{id:[0-9]+}", s.handleGetRequest).Methods("GET")
	auth.HandleFunc("/requests/{id:[0-9]+}/cancel", s.handleCancelRequest).Methods("POST")

	auth.HandleFunc("/groups/{id:[0-9]+}/join", s.handleJoinGroup).Methods("POST")

	auth.HandleFunc("/tags", s.handleListTags).Methods("GET")

	staff := auth.NewRoute().Subrouter()
	staff.Use(s.requireStaff)

	staff.HandleFunc("/cars", s.handleCreateCar).Methods("POST")
	staff.HandleFunc("/cars/{id:[0-9]+}", s.handleUpdateCar).Methods("PUT")
	staff.HandleFunc("/cars/{id:[0-9]+}/status", s.handleSetCarStatus).Methods("PATCH")

	staff.HandleFunc("/requests", s.handleListRequests).Methods("GET")
	staff.HandleFunc("/requests/{id:[0-9]+}/approve", s.handleApproveRequest).Methods("POST")
	staff.HandleFunc("/requests/{id:[0-9]+}/reject", s.handleRejectRequest).Methods("POST")

	staff.HandleFunc("/rentals", s.handleCreateRental).Methods("POST")
	staff.HandleFunc("/rentals", s.handleListRentals).Methods("GET")
	staff.HandleFunc("/rentals/{id:[0-9]+}", s.handleGetRental).Methods("GET")
	staff.HandleFunc("/rentals/{id:[0-9]+}", s.handleUpdateRental).Methods("PUT")
	staff.HandleFunc("/rentals/{id:[0-9]+}/finish", s.handleFinishRental).Methods("POST")
	staff.HandleFunc("/rentals/{id:[0-9]+}/cancel", s.handleCancelRental).Methods("POST")
	staff.HandleFunc("/stats", s.handleStats).Methods("GET")

	staff.HandleFunc("/payments/pending", s.handlePendingPayments).Methods("GET")
	staff.HandleFunc("/payments/{id:[0-9]+}", s.handleGetPayment).Methods("GET")
	staff.HandleFunc("/payments/{id:[0-9]+}/confirm", s.handleConfirmPayment).Methods("POST")

	staff.HandleFunc("/tags", s.handleCreateTag).Methods("POST")
	staff.HandleFunc("/tags/{id:[0-9]+}", s.handleUpdateTag).Methods("PUT")
	staff.HandleFunc("/tags/{id:[0-9]+}", s.handleDeleteTag).Methods("DELETE")
	staff.HandleFunc("/users/{id:[0-9]+}/tags/{tagID:[0-9]+}", s.handleAssignTag).Methods("POST")
	staff.HandleFunc("/users/{id:[0-9]+}/tags/{tagID:[0-9]+}", s.handleRemoveTag).Methods("DELETE")

	staff.HandleFunc("/groups", s.handleListGroups).Methods("GET")
	staff.HandleFunc("/groups", s.handleCreateGroup).Methods("POST")
	staff.HandleFunc("/groups/{id:[0-9]+}", s.handleGetGroup).Methods("GET")
	staff.HandleFunc("/groups/{id:[0-9]+}", s.handleUpdateGroup).Methods("PUT")
	staff.HandleFunc("/groups/{id:[0-9]+}", s.handleDeleteGroup).Methods("DELETE")

	admin := auth.NewRoute().Subrouter()
	admin.Use(s.requireAdmin)

	admin.HandleFunc("/users", s.handleListUsers).Methods("GET")
	admin.HandleFunc("/users/{id:[0-9]+}", s.handleGetUser).Methods("GET")
	admin.HandleFunc("/users/{id:[0-9]+}/roles", s.handleUpdateUserRoles).Methods("PUT")
	admin.HandleFunc("/cars/{id:[0-9]+}", s.handleDeleteCar).Methods("DELETE")
	admin.HandleFunc("/rentals/{id:[0-9]+}", s.handleDeleteRental).Methods("DELETE")

	return r
}
