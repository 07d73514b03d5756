package domain

import "time"

type Customer struct {
	ID        string
	Name      string
	Phone     string
	CPF       string
	AddressID string
	ImageID   *string
	Address   *Address
	Avatar    *Image
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Address is the billing address owned by a customer. Shipping addresses
// are DeliveredAddress rows and carry the default-address flag.
type Address struct {
	ID           string
	Zipcode      string
	Street       string
	Number       int
	Neighborhood string
	Complement   string
	City         string
	Province     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
