package domain

import (
	"time"

	"atelier/internal/money"
)

// OrderDraft accumulates the data needed to create an order. It is
// in-memory only; nothing is persisted until the order usecase submits
// a ready draft.
type OrderDraft struct {
	Customer         *Customer
	DeliveryAddress  *DeliveredAddress
	TakenAt          time.Time
	CollectedAt      time.Time
	Lines            []OrderLine
	Attachments      [][]byte
	OverrideInCents  int64
}

func NewOrderDraft() *OrderDraft {
	return &OrderDraft{}
}

func (d *OrderDraft) SetCustomer(customer Customer) {
	d.Customer = &customer
}

func (d *OrderDraft) SetDeliveryAddress(address DeliveredAddress) {
	d.DeliveryAddress = &address
}

func (d *OrderDraft) SetPickupDate(takenAt time.Time) {
	d.TakenAt = takenAt
}

func (d *OrderDraft) SetCollectionDate(collectedAt time.Time) {
	d.CollectedAt = collectedAt
}

// AddItem snapshots the item's name and amount into a line. The draft
// keeps the values it saw; later edits to the item do not reach it.
func (d *OrderDraft) AddItem(item Item) {
	d.Lines = append(d.Lines, OrderLine{
		ItemID:        item.ID,
		Name:          item.Name,
		AmountInCents: item.AmountInCents,
	})
}

func (d *OrderDraft) RemoveItem(itemID string) {
	lines := d.Lines[:0]
	for _, line := range d.Lines {
		if line.ItemID != itemID {
			lines = append(lines, line)
		}
	}
	d.Lines = lines
}

func (d *OrderDraft) AttachImage(data []byte) {
	d.Attachments = append(d.Attachments, data)
}

func (d *OrderDraft) RemoveImage(index int) {
	if index < 0 || index >= len(d.Attachments) {
		return
	}
	d.Attachments = append(d.Attachments[:index], d.Attachments[index+1:]...)
}

// OverrideSubtotal records a user-typed total. A zero parse result counts
// as "no override" and the computed sum applies again.
func (d *OrderDraft) OverrideSubtotal(raw string, loc money.Locale) {
	d.OverrideInCents = money.ParseDecimalToCents(raw, loc)
}

// IsReady reports whether every required field is present. Submission
// must stay disabled while it returns false.
func (d *OrderDraft) IsReady() bool {
	return len(d.MissingFields()) == 0
}

func (d *OrderDraft) MissingFields() []string {
	var missing []string
	if d.Customer == nil {
		missing = append(missing, "customer")
	}
	if d.DeliveryAddress == nil {
		missing = append(missing, "deliveryAddress")
	}
	if d.TakenAt.IsZero() {
		missing = append(missing, "takenAt")
	}
	if d.CollectedAt.IsZero() {
		missing = append(missing, "collectedAt")
	}
	if len(d.Lines) == 0 {
		missing = append(missing, "items")
	}
	return missing
}

// TotalAmountInCents returns the override when one was supplied, and the
// sum of the line snapshots otherwise.
func (d *OrderDraft) TotalAmountInCents() int64 {
	if d.OverrideInCents > 0 {
		return d.OverrideInCents
	}

	var total int64
	for _, line := range d.Lines {
		total += line.AmountInCents
	}
	return total
}
