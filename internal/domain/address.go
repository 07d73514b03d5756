package domain

import "time"

// DeliveredAddress is a shipping address belonging to a customer. At most
// one row per customer may have IsDefaultAddress set at any time; the
// address module flips the flag with a single conditional update.
type DeliveredAddress struct {
	ID               string
	CustomerID       string
	Zipcode          string
	Street           string
	Number           int
	Neighborhood     string
	Complement       string
	City             string
	Province         string
	IsDefaultAddress bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
