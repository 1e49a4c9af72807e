package domain

import "time"

type CarStatus string

const (
	CarStatusAvailable   CarStatus = "AVAILABLE"
	CarStatusRented      CarStatus = "RENTED"
	CarStatusMaintenance CarStatus = "MAINTENANCE"
)

// Car is a fleet vehicle. DailyPriceCents is the rental price per day;
// all money in the system is integer cents.
type Car struct {
	ID              int32     `json:"id"`
	Model           string    `json:"model"`
	Plate           string    `json:"plate"`
	Year            int32     `json:"year"`
	Status          CarStatus `json:"status"`
	DailyPriceCents int32     `json:"daily_price_cents"`
	PhotoURL        string    `json:"photo_url,omitempty"`
	Description     string    `json:"description,omitempty"`
	CreatedOn       time.Time `json:"created_on"`
	UpdatedOn       time.Time `json:"updated_on"`
}

func (c *Car) IsAvailable() bool {
	return c.Status == CarStatusAvailable
}
