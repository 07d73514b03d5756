package dto

type CreateOrderRequest struct {
	CustomerID        string   `json:"customerId"`
	DeliveryAddressID string   `json:"deliveryAddressId"`
	TakenAt           string   `json:"takenAt"`
	CollectedAt       string   `json:"collectedAt"`
	ItemIDs           []string `json:"itemIds"`
	SubtotalOverride  string   `json:"subtotalOverride,omitempty"`
	Attachments       []string `json:"attachments,omitempty"`
}

type AttachmentResult struct {
	Filename string `json:"filename"`
	Uploaded bool   `json:"uploaded"`
}

type OrderSubmissionResult struct {
	OrderID            string             `json:"orderId"`
	TotalAmountInCents int64              `json:"totalAmountInCents"`
	Attachments        []AttachmentResult `json:"attachments"`
}

type OrderLineDTO struct {
	ItemID        string `json:"itemId"`
	Name          string `json:"name"`
	AmountInCents int64  `json:"amountInCents"`
}

type OrderImageDTO struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	URL      string `json:"url,omitempty"`
}

type OrderAddressDTO struct {
	ID           string `json:"id"`
	Zipcode      string `json:"zipcode"`
	Street       string `json:"street"`
	Number       int    `json:"number"`
	Neighborhood string `json:"neighborhood"`
	Complement   string `json:"complement"`
	City         string `json:"city"`
	Province     string `json:"province"`
}

type OrderResponse struct {
	ID                 string           `json:"id"`
	CustomerID         string           `json:"customerId"`
	CustomerName       string           `json:"customerName,omitempty"`
	DeliveryAddressID  string           `json:"deliveryAddressId"`
	DeliveryAddress    *OrderAddressDTO `json:"deliveryAddress,omitempty"`
	TakenAt            string           `json:"takenAt"`
	CollectedAt        string           `json:"collectedAt"`
	TotalAmountInCents int64            `json:"totalAmountInCents"`
	TotalDisplay       string           `json:"totalDisplay"`
	Status             string           `json:"status"`
	IsCollected        bool             `json:"isCollected"`
	Lines              []OrderLineDTO   `json:"lines"`
	Images             []OrderImageDTO  `json:"images"`
	CreatedAt          string           `json:"createdAt"`
	UpdatedAt          string           `json:"updatedAt"`
}

type OrderFilter struct {
	Status      string
	IsCollected *bool
	Search      string
	Page        int
	Limit       int
}

type ListOrdersResponse struct {
	Orders   []OrderResponse `json:"orders"`
	Next     bool            `json:"next"`
	Previous bool            `json:"previous"`
}

type CollectionReport struct {
	UncollectedCount int64 `json:"uncollectedCount"`
	Overdue          int64 `json:"overdue"`
	NotYetDue        int64 `json:"notYetDue"`
}
