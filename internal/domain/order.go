package domain

import "time"

type Order struct {
	ID                 string
	CustomerID         string
	DeliveryAddressID  string
	TakenAt            time.Time
	CollectedAt        time.Time
	TotalAmountInCents int64
	Status             string
	IsCollected        bool
	Customer           *Customer
	DeliveryAddress    *DeliveredAddress
	Lines              []OrderLine
	Images             []Image
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

const (
	OrderStatusPending  = "PENDING"
	OrderStatusPaid     = "PAID"
	OrderStatusCanceled = "CANCELED"
)

// OrderLine is a snapshot of an item at order-creation time. Name and
// amount are frozen so later item edits never change historical totals.
type OrderLine struct {
	ID            string
	OrderID       string
	ItemID        string
	Name          string
	AmountInCents int64
}

// CanTransition reports whether status changes are still allowed.
// PAID and CANCELED are terminal; only isCollected stays mutable.
func (o Order) CanTransition() bool {
	return o.Status == OrderStatusPending
}

// CollectionOverdue reports whether the planned collection date has
// already passed without the order being collected.
func (o Order) CollectionOverdue(now time.Time) bool {
	return !o.IsCollected && !o.CollectedAt.After(now)
}
