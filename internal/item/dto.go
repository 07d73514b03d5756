package item

type ItemDTO struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	AmountInCents int64  `json:"amountInCents"`
	AmountDisplay string `json:"amountDisplay"`
	IsActive      bool   `json:"isActive"`
	ImageURL      string `json:"imageUrl,omitempty"`
}

type CreateItemRequest struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Image  string `json:"image,omitempty"`
}

type UpdateItemRequest struct {
	Name     string `json:"name"`
	Amount   string `json:"amount"`
	IsActive *bool  `json:"isActive,omitempty"`
	Image    string `json:"image,omitempty"`
}

type ListItemsResponse struct {
	Items    []ItemDTO `json:"items"`
	Next     bool      `json:"next"`
	Previous bool      `json:"previous"`
}
