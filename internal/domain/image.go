package domain

import "time"

type Image struct {
	ID        string
	Filename  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
