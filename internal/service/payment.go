package service

import (
	"context"
	"fmt"
	"time"

	"louercar-backend/internal/domain"
	"louercar-backend/internal/repository"
)

type paymentService struct {
	paymentRepo repository.PaymentRepository
	rentalRepo  repository.RentalRepository
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
	emailSvc    EmailService
	noteRepo    repository.NotificationRepository
	now         func() time.Time
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	rentalRepo repository.RentalRepository,
	profileRepo repository.ProfileRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
	noteRepo repository.NotificationRepository,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		rentalRepo:  rentalRepo,
		profileRepo: profileRepo,
		userRepo:    userRepo,
		emailSvc:    emailSvc,
		noteRepo:    noteRepo,
		now:         time.Now,
	}
}

func (s *paymentService) Get(ctx context.Context, id int32) (*domain.Payment, error) {
	return s.paymentRepo.GetByID(ctx, id)
}

func (s *paymentService) GetByRental(ctx context.Context, rentalID int32) (*domain.Payment, error) {
	return s.paymentRepo.GetByRentalID(ctx, rentalID)
}

func (s *paymentService) ListPending(ctx context.Context) ([]domain.Payment, error) {
	return s.paymentRepo.ListByStatus(ctx, domain.PaymentStatusPending)
}

func (s *paymentService) ListMine(ctx context.Context, userID int32) ([]domain.Payment, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.paymentRepo.ListByProfile(ctx, profile.ID)
}

func (s *paymentService) Confirm(ctx context.Context, id int32) (*domain.Payment, error) {
	if err := s.paymentRepo.Confirm(ctx, id, s.now()); err != nil {
		return nil, err
	}

	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.notifyPaymentApproved(ctx, payment)
	return payment, nil
}

// notifyPaymentApproved is best effort; the confirmation stands even when
// the email bounces.
func (s *paymentService) notifyPaymentApproved(ctx context.Context, payment *domain.Payment) {
	rental, err := s.rentalRepo.GetByID(ctx, payment.RentalID)
	if err != nil {
		return
	}
	profile, err := s.profileRepo.GetByID(ctx, rental.ProfileID)
	if err != nil {
		return
	}
	user, err := s.userRepo.GetByID(ctx, profile.UserID)
	if err != nil {
		return
	}

	_ = s.emailSvc.SendPaymentApproved(ctx, user.Email, user.Username, payment)
	_ = s.noteRepo.Create(ctx, &domain.Notification{
		UserID:  user.ID,
		Title:   "Payment approved",
		Message: fmt.Sprintf("We received your payment of %s. Your rental is confirmed.", formatAmount(payment.AmountCents)),
	})
}
