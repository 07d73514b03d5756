package domain

import "time"

type Item struct {
	ID            string
	Name          string
	AmountInCents int64
	IsActive      bool
	ImageID       *string
	Image         *Image
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
