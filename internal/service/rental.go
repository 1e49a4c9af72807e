package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"louercar-backend/internal/config"
	"louercar-backend/internal/domain"
	"louercar-backend/internal/repository"
)

type rentalService struct {
	requestRepo repository.RequestRepository
	rentalRepo  repository.RentalRepository
	carRepo     repository.CarRepository
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
	emailSvc    EmailService
	noteRepo    repository.NotificationRepository
	payCfg      config.PaymentConfig
	now         func() time.Time
}

func NewRentalService(
	requestRepo repository.RequestRepository,
	rentalRepo repository.RentalRepository,
	carRepo repository.CarRepository,
	profileRepo repository.ProfileRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
	noteRepo repository.NotificationRepository,
	payCfg config.PaymentConfig,
) RentalService {
	return &rentalService{
		requestRepo: requestRepo,
		rentalRepo:  rentalRepo,
		carRepo:     carRepo,
		profileRepo: profileRepo,
		userRepo:    userRepo,
		emailSvc:    emailSvc,
		noteRepo:    noteRepo,
		payCfg:      payCfg,
		now:         time.Now,
	}
}

func (s *rentalService) SubmitRequest(ctx context.Context, userID, carID int32, start, end time.Time, notes string) (*domain.RentalRequest, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, ErrProfileRequired
	}
	if profile.LicenseNumber == "" {
		return nil, ErrProfileRequired
	}

	if !end.After(start) {
		return nil, ErrInvalidPeriod
	}
	if start.Before(s.now()) {
		return nil, ErrInvalidPeriod
	}

	car, err := s.carRepo.GetByID(ctx, carID)
	if err != nil {
		return nil, err
	}
	if !car.IsAvailable() {
		return nil, repository.ErrCarUnavailable
	}

	req := &domain.RentalRequest{
		ProfileID: profile.ID,
		CarID:     carID,
		StartDate: start,
		EndDate:   end,
		Status:    domain.RequestStatusPending,
		Notes:     notes,
	}
	req.EstimatedPriceCents = car.DailyPriceCents * req.Days()

	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *rentalService) GetRequest(ctx context.Context, id int32) (*domain.RentalRequest, error) {
	return s.requestRepo.GetByID(ctx, id)
}

func (s *rentalService) ListMyRequests(ctx context.Context, userID int32) ([]domain.RentalRequest, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.requestRepo.ListByProfile(ctx, profile.ID)
}

func (s *rentalService) ListRequests(ctx context.Context, status domain.RequestStatus) ([]domain.RentalRequest, error) {
	return s.requestRepo.ListByStatus(ctx, status)
}

// newPayment builds the pending payment attached to an approved request.
// Provider metadata comes from configuration; PIX charges without a
// configured code get a generated transaction reference.
func (s *rentalService) newPayment(amountCents int32) *domain.Payment {
	p := &domain.Payment{
		Method:      domain.PaymentMethod(strings.ToUpper(s.payCfg.Method)),
		AmountCents: amountCents,
		Status:      domain.PaymentStatusPending,
		DueDate:     s.now().Add(time.Duration(s.payCfg.DueDays) * 24 * time.Hour),
	}
	switch p.Method {
	case domain.PaymentMethodPix:
		p.PixKey = s.payCfg.PixKey
		p.PixQRCode = s.payCfg.PixQRCode
		if p.PixQRCode == "" {
			p.PixQRCode = fmt.Sprintf("pix:%s?txid=%s", p.PixKey, uuid.NewString())
		}
	case domain.PaymentMethodBoleto:
		p.BoletoBarcode = s.payCfg.BoletoBarcode
		p.BoletoLine = s.payCfg.BoletoLine
	}
	return p
}

func (s *rentalService) ApproveRequest(ctx context.Context, staffID, requestID int32) (*domain.Rental, *domain.Payment, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, nil, err
	}
	if req.Status != domain.RequestStatusPending {
		return nil, nil, repository.ErrRequestNotPending
	}

	payment := s.newPayment(req.EstimatedPriceCents)
	rental, err := s.requestRepo.Approve(ctx, req, staffID, payment)
	if err != nil {
		return nil, nil, err
	}

	s.notifyPaymentPending(ctx, req.ProfileID, payment)
	return rental, payment, nil
}

// notifyPaymentPending is best effort; a failed email or notification row
// never rolls back an approval.
func (s *rentalService) notifyPaymentPending(ctx context.Context, profileID int32, payment *domain.Payment) {
	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return
	}
	user, err := s.userRepo.GetByID(ctx, profile.UserID)
	if err != nil {
		return
	}

	_ = s.emailSvc.SendPaymentPending(ctx, user.Email, user.Username, payment)
	_ = s.noteRepo.Create(ctx, &domain.Notification{
		UserID:  user.ID,
		Title:   "Payment pending",
		Message: fmt.Sprintf("Your rental request was approved. A payment of %s is due by %s.", formatAmount(payment.AmountCents), payment.DueDate.Format("02 Jan 2006")),
	})
}

func (s *rentalService) RejectRequest(ctx context.Context, requestID int32) error {
	return s.requestRepo.SetStatus(ctx, requestID, domain.RequestStatusPending, domain.RequestStatusRejected)
}

// CancelRequest lets a client withdraw their own pending request.
func (s *rentalService) CancelRequest(ctx context.Context, userID, requestID int32) error {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if req.ProfileID != profile.ID {
		return ErrForbidden
	}
	return s.requestRepo.SetStatus(ctx, requestID, domain.RequestStatusPending, domain.RequestStatusCancelled)
}

func (s *rentalService) CreateRental(ctx context.Context, staffID, profileID, carID int32, start, end time.Time, priceCents int32) (*domain.Rental, error) {
	if !end.After(start) {
		return nil, ErrInvalidPeriod
	}
	if priceCents <= 0 {
		return nil, fmt.Errorf("rental price must be positive")
	}
	if _, err := s.profileRepo.GetByID(ctx, profileID); err != nil {
		return nil, err
	}

	rental := &domain.Rental{
		ProfileID:  profileID,
		CarID:      carID,
		StaffID:    staffID,
		StartDate:  start,
		EndDate:    end,
		PriceCents: priceCents,
		Status:     domain.RentalStatusActive,
	}
	if err := s.rentalRepo.Create(ctx, rental); err != nil {
		return nil, err
	}
	return rental, nil
}

func (s *rentalService) GetRental(ctx context.Context, id int32) (*domain.Rental, error) {
	return s.rentalRepo.GetByID(ctx, id)
}

func (s *rentalService) ListRentals(ctx context.Context, status domain.RentalStatus, query string) ([]domain.Rental, error) {
	return s.rentalRepo.List(ctx, status, query)
}

func (s *rentalService) ListMyRentals(ctx context.Context, userID int32) ([]domain.Rental, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.rentalRepo.ListByProfile(ctx, profile.ID)
}

// UpdateRental edits the rental window and price. Status changes go through
// FinishRental and CancelRental only.
func (s *rentalService) UpdateRental(ctx context.Context, id int32, start, end time.Time, priceCents int32) (*domain.Rental, error) {
	if !end.After(start) {
		return nil, ErrInvalidPeriod
	}
	if priceCents <= 0 {
		return nil, fmt.Errorf("rental price must be positive")
	}

	rental, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rental.StartDate = start
	rental.EndDate = end
	rental.PriceCents = priceCents
	if err := s.rentalRepo.Update(ctx, rental); err != nil {
		return nil, err
	}
	return rental, nil
}

func (s *rentalService) FinishRental(ctx context.Context, id int32) error {
	return s.rentalRepo.Transition(ctx, id, domain.RentalStatusFinished)
}

func (s *rentalService) CancelRental(ctx context.Context, id int32) error {
	return s.rentalRepo.Transition(ctx, id, domain.RentalStatusCancelled)
}

func (s *rentalService) DeleteRental(ctx context.Context, id int32) error {
	return s.rentalRepo.Delete(ctx, id)
}

func (s *rentalService) Stats(ctx context.Context) (*repository.RentalStats, map[domain.RequestStatus]int32, error) {
	stats, err := s.rentalRepo.Stats(ctx)
	if err != nil {
		return nil, nil, err
	}
	counts, err := s.requestRepo.CountByStatus(ctx)
	if err != nil {
		return nil, nil, err
	}
	return stats, counts, nil
}
