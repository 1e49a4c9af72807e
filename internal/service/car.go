package service

import (
	"context"
	"fmt"
	"time"

	"louercar-backend/internal/domain"
	"louercar-backend/internal/repository"
)

type carService struct {
	carRepo repository.CarRepository
}

func NewCarService(carRepo repository.CarRepository) CarService {
	return &carService{carRepo: carRepo}
}

func validateCar(car *domain.Car) error {
	if car.Model == "" {
		return fmt.Errorf("car model is required")
	}
	if car.Plate == "" {
		return fmt.Errorf("car plate is required")
	}
	if car.Year < 1900 || car.Year > int32(time.Now().Year())+1 {
		return fmt.Errorf("invalid car year: %d", car.Year)
	}
	if car.DailyPriceCents <= 0 {
		return fmt.Errorf("daily price must be positive")
	}
	return nil
}

func (s *carService) Create(ctx context.Context, car *domain.Car) error {
	if err := validateCar(car); err != nil {
		return err
	}
	if car.Status == "" {
		car.Status = domain.CarStatusAvailable
	}
	return s.carRepo.Create(ctx, car)
}

func (s *carService) Get(ctx context.Context, id int32) (*domain.Car, error) {
	return s.carRepo.GetByID(ctx, id)
}

func (s *carService) Update(ctx context.Context, car *domain.Car) error {
	if err := validateCar(car); err != nil {
		return err
	}
	return s.carRepo.Update(ctx, car)
}

func (s *carService) Delete(ctx context.Context, id int32) error {
	return s.carRepo.Delete(ctx, id)
}

func (s *carService) List(ctx context.Context, status domain.CarStatus, query string) ([]domain.Car, error) {
	return s.carRepo.List(ctx, status, query)
}

func (s *carService) SetStatus(ctx context.Context, id int32, status domain.CarStatus) error {
	switch status {
	case domain.CarStatusAvailable, domain.CarStatusRented, domain.CarStatusMaintenance:
	default:
		return fmt.Errorf("invalid car status: %s", status)
	}
	return s.carRepo.SetStatus(ctx, id, status)
}
