package repository

import (
	"context"
	"errors"
	"time"

	"louercar-backend/internal/domain"
)

// Conflict results from the conditional updates that guard the rental
// lifecycle. Zero rows affected on a guarded write means the precondition
// no longer holds.
var (
	ErrCarUnavailable    = errors.New("car is not available")
	ErrRequestNotPending = errors.New("rental request is not pending")
	ErrRentalNotActive   = errors.New("rental is not active")
	ErrPaymentNotPending = errors.New("payment is not pending")
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	List(ctx context.Context) ([]domain.User, error)
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.ClientProfile) error
	GetByID(ctx context.Context, id int32) (*domain.ClientProfile, error)
	GetByUserID(ctx context.Context, userID int32) (*domain.ClientProfile, error)
	Update(ctx context.Context, profile *domain.ClientProfile) error
}

type CarRepository interface {
	Create(ctx context.Context, car *domain.Car) error
	GetByID(ctx context.Context, id int32) (*domain.Car, error)
	Update(ctx context.Context, car *domain.Car) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, status domain.CarStatus, query string) ([]domain.Car, error)
	SetStatus(ctx context.Context, id int32, status domain.CarStatus) error
}

type TagRepository interface {
	Create(ctx context.Context, tag *domain.Tag) error
	GetByID(ctx context.Context, id int32) (*domain.Tag, error)
	GetByName(ctx context.Context, name string) (*domain.Tag, error)
	List(ctx context.Context) ([]domain.Tag, error)
	Update(ctx context.Context, tag *domain.Tag) error
	Delete(ctx context.Context, id int32) error

	// AssignToUser reports false when the user already held the tag.
	AssignToUser(ctx context.Context, userID, tagID int32) (bool, error)
	RemoveFromUser(ctx context.Context, userID, tagID int32) error
	RemoveNamedFromUser(ctx context.Context, userID int32, names []string) error
	ListByUser(ctx context.Context, userID int32) ([]domain.Tag, error)
}

type GroupRepository interface {
	Create(ctx context.Context, group *domain.Group) error
	GetByID(ctx context.Context, id int32) (*domain.Group, error)
	List(ctx context.Context) ([]domain.Group, error)
	Update(ctx context.Context, group *domain.Group) error
	Delete(ctx context.Context, id int32) error
	ListByTag(ctx context.Context, tagID int32) ([]domain.Group, error)

	// ListVisibleToUser returns the distinct groups whose tag is among the
	// user's tags. A user with no tags sees no groups.
	ListVisibleToUser(ctx context.Context, userID int32) ([]domain.Group, error)

	// AddMember reports false when the membership row already existed.
	AddMember(ctx context.Context, userID, groupID int32) (bool, error)
}

type RequestRepository interface {
	Create(ctx context.Context, req *domain.RentalRequest) error
	GetByID(ctx context.Context, id int32) (*domain.RentalRequest, error)
	ListByProfile(ctx context.Context, profileID int32) ([]domain.RentalRequest, error)
	ListByStatus(ctx context.Context, status domain.RequestStatus) ([]domain.RentalRequest, error)
	CountByStatus(ctx context.Context) (map[domain.RequestStatus]int32, error)

	// SetStatus transitions the request only while it still has the from
	// status; ErrRequestNotPending otherwise.
	SetStatus(ctx context.Context, id int32, from, to domain.RequestStatus) error

	// Approve runs the approval as one transaction: claim the car with a
	// conditional update, create the active rental, mark the request
	// approved and link the rental, create the pending payment. The
	// payment's RentalID is filled in; ErrCarUnavailable or
	// ErrRequestNotPending roll everything back.
	Approve(ctx context.Context, req *domain.RentalRequest, staffID int32, payment *domain.Payment) (*domain.Rental, error)
}

// RentalStats backs the staff dashboard.
type RentalStats struct {
	Total            int32 `json:"total"`
	Active           int32 `json:"active"`
	Finished         int32 `json:"finished"`
	Cancelled        int32 `json:"cancelled"`
	ActiveValueCents int64 `json:"active_value_cents"`
}

type RentalRepository interface {
	// Create registers a rental directly (the staff path that bypasses
	// requests). For an active rental the car is claimed with a conditional
	// update in the same transaction; ErrCarUnavailable on conflict.
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id int32) (*domain.Rental, error)
	Update(ctx context.Context, rental *domain.Rental) error
	// Delete removes the rental; an active rental's car is released first.
	// The payment cascades, the originating request keeps a null link.
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, status domain.RentalStatus, query string) ([]domain.Rental, error)
	ListByProfile(ctx context.Context, profileID int32) ([]domain.Rental, error)
	Stats(ctx context.Context) (*RentalStats, error)

	// Transition moves an active rental to finished or cancelled and
	// releases the car iff no other active rental references it, all in one
	// transaction. ErrRentalNotActive when the rental already left ACTIVE.
	Transition(ctx context.Context, id int32, to domain.RentalStatus) error
}

type PaymentRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Payment, error)
	GetByRentalID(ctx context.Context, rentalID int32) (*domain.Payment, error)
	ListByStatus(ctx context.Context, status domain.PaymentStatus) ([]domain.Payment, error)
	ListByProfile(ctx context.Context, profileID int32) ([]domain.Payment, error)

	// Confirm approves a pending payment and records the paid timestamp;
	// ErrPaymentNotPending when it already left PENDING (a second
	// confirmation is a conflict, not a repeat).
	Confirm(ctx context.Context, id int32, paidAt time.Time) error

	// ExpireOverdue cancels pending payments past their due date with a
	// single conditional update and returns how many were cancelled.
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}
