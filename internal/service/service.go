package service

import (
	"context"
	"errors"
	"time"

	"louercar-backend/internal/domain"
	"louercar-backend/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidPeriod      = errors.New("rental period is invalid")
	ErrProfileRequired    = errors.New("client profile is required")
	ErrForbidden          = errors.New("operation not allowed for this user")
)

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, string, string, error) // user, access, refresh
	Login(ctx context.Context, username, password string) (*domain.User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type UserService interface {
	Get(ctx context.Context, id int32) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)

	// UpdateRoles flips the account flags and re-syncs the role tags to
	// match. Flipping staff off demotes the user back to a plain client.
	UpdateRoles(ctx context.Context, userID int32, isStaff, isSuperuser, isActive bool) (*domain.User, error)

	GetProfile(ctx context.Context, userID int32) (*domain.ClientProfile, error)
	UpdateProfile(ctx context.Context, userID int32, licenseNumber, phone, address string) (*domain.ClientProfile, error)
}

type CarService interface {
	Create(ctx context.Context, car *domain.Car) error
	Get(ctx context.Context, id int32) (*domain.Car, error)
	Update(ctx context.Context, car *domain.Car) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, status domain.CarStatus, query string) ([]domain.Car, error)
	SetStatus(ctx context.Context, id int32, status domain.CarStatus) error
}

type RentalService interface {
	SubmitRequest(ctx context.Context, userID, carID int32, start, end time.Time, notes string) (*domain.RentalRequest, error)
	GetRequest(ctx context.Context, id int32) (*domain.RentalRequest, error)
	ListMyRequests(ctx context.Context, userID int32) ([]domain.RentalRequest, error)
	ListRequests(ctx context.Context, status domain.RequestStatus) ([]domain.RentalRequest, error)
	ApproveRequest(ctx context.Context, staffID, requestID int32) (*domain.Rental, *domain.Payment, error)
	RejectRequest(ctx context.Context, requestID int32) error
	CancelRequest(ctx context.Context, userID, requestID int32) error

	CreateRental(ctx context.Context, staffID, profileID, carID int32, start, end time.Time, priceCents int32) (*domain.Rental, error)
	GetRental(ctx context.Context, id int32) (*domain.Rental, error)
	ListRentals(ctx context.Context, status domain.RentalStatus, query string) ([]domain.Rental, error)
	ListMyRentals(ctx context.Context, userID int32) ([]domain.Rental, error)
	UpdateRental(ctx context.Context, id int32, start, end time.Time, priceCents int32) (*domain.Rental, error)
	FinishRental(ctx context.Context, id int32) error
	CancelRental(ctx context.Context, id int32) error
	DeleteRental(ctx context.Context, id int32) error

	Stats(ctx context.Context) (*repository.RentalStats, map[domain.RequestStatus]int32, error)
}

type PaymentService interface {
	Get(ctx context.Context, id int32) (*domain.Payment, error)
	GetByRental(ctx context.Context, rentalID int32) (*domain.Payment, error)
	ListPending(ctx context.Context) ([]domain.Payment, error)
	ListMine(ctx context.Context, userID int32) ([]domain.Payment, error)

	// Confirm approves a pending payment and notifies the client. A second
	// confirmation surfaces repository.ErrPaymentNotPending.
	Confirm(ctx context.Context, id int32) (*domain.Payment, error)
}

type TagService interface {
	CreateTag(ctx context.Context, tag *domain.Tag) error
	GetTag(ctx context.Context, id int32) (*domain.Tag, error)
	ListTags(ctx context.Context) ([]domain.Tag, error)
	UpdateTag(ctx context.Context, tag *domain.Tag) error
	DeleteTag(ctx context.Context, id int32) error

	// AssignTag hands a user a tag and joins them to the groups gated by
	// it. Assigning a tag the user already holds is a no-op.
	AssignTag(ctx context.Context, userID, tagID int32) error
	RemoveTag(ctx context.Context, userID, tagID int32) error
	ListUserTags(ctx context.Context, userID int32) ([]domain.Tag, error)

	// SyncRoleTags reconciles the user's role tags with the account flags.
	SyncRoleTags(ctx context.Context, user *domain.User) error

	CreateGroup(ctx context.Context, group *domain.Group) error
	GetGroup(ctx context.Context, id int32) (*domain.Group, error)
	ListGroups(ctx context.Context) ([]domain.Group, error)
	UpdateGroup(ctx context.Context, group *domain.Group) error
	DeleteGroup(ctx context.Context, id int32) error

	VisibleGroups(ctx context.Context, userID int32) ([]domain.Group, error)

	// JoinGroup reports whether the user was newly added; false means they
	// were already a member.
	JoinGroup(ctx context.Context, userID, groupID int32) (bool, error)
}

type NotificationService interface {
	List(ctx context.Context, userID int32) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

type EmailService interface {
	SendPaymentPending(ctx context.Context, email, username string, payment *domain.Payment) error
	SendPaymentApproved(ctx context.Context, email, username string, payment *domain.Payment) error
}
