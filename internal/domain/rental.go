package domain

import "time"

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "PENDING"
	RequestStatusApproved  RequestStatus = "APPROVED"
	RequestStatusRejected  RequestStatus = "REJECTED"
	RequestStatusCancelled RequestStatus = "CANCELLED"
)

// RentalRequest is a client-submitted proposal to rent a car for a window.
// Staff approval turns it into a Rental; only PENDING requests transition.
type RentalRequest struct {
	ID                  int32         `json:"id"`
	ProfileID           int32         `json:"profile_id"`
	CarID               int32         `json:"car_id"`
	StartDate           time.Time     `json:"start_date"`
	EndDate             time.Time     `json:"end_date"`
	EstimatedPriceCents int32         `json:"estimated_price_cents"`
	Status              RequestStatus `json:"status"`
	Notes               string        `json:"notes,omitempty"`
	RentalID            *int32        `json:"rental_id,omitempty"` // set on approval
	CreatedOn           time.Time     `json:"created_on"`
	UpdatedOn           time.Time     `json:"updated_on"`
}

// Days returns the billable rental duration, minimum one day.
func (r *RentalRequest) Days() int32 {
	d := int32(r.EndDate.Sub(r.StartDate).Hours() / 24)
	if d < 1 {
		return 1
	}
	return d
}

type RentalStatus string

const (
	RentalStatusActive    RentalStatus = "ACTIVE"
	RentalStatusFinished  RentalStatus = "FINISHED"
	RentalStatusCancelled RentalStatus = "CANCELLED"
)

// Rental is the binding record created when staff approves a request, or
// registers one directly. PriceCents is a snapshot; later car price changes
// do not affect it.
type Rental struct {
	ID         int32        `json:"id"`
	ProfileID  int32        `json:"profile_id"`
	CarID      int32        `json:"car_id"`
	StaffID    int32        `json:"staff_id"`
	StartDate  time.Time    `json:"start_date"`
	EndDate    time.Time    `json:"end_date"`
	PriceCents int32        `json:"price_cents"`
	Status     RentalStatus `json:"status"`
	CreatedOn  time.Time    `json:"created_on"`
	UpdatedOn  time.Time    `json:"updated_on"`
}

func (r *Rental) IsActive() bool {
	return r.Status == RentalStatusActive
}
