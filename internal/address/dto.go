package address

type DeliveredAddressDTO struct {
	ID               string `json:"id"`
	CustomerID       string `json:"customerId"`
	Zipcode          string `json:"zipcode"`
	Street           string `json:"street"`
	Number           int    `json:"number"`
	Neighborhood     string `json:"neighborhood"`
	Complement       string `json:"complement"`
	City             string `json:"city"`
	Province         string `json:"province"`
	IsDefaultAddress bool   `json:"isDefaultAddress"`
}

type CreateDeliveredAddressRequest struct {
	Zipcode      string `json:"zipcode"`
	Street       string `json:"street"`
	Number       int    `json:"number"`
	Neighborhood string `json:"neighborhood"`
	Complement   string `json:"complement"`
	City         string `json:"city"`
	Province     string `json:"province"`
	IsDefault    bool   `json:"isDefault"`
}

type UpdateDeliveredAddressRequest struct {
	Zipcode      string `json:"zipcode"`
	Street       string `json:"street"`
	Number       int    `json:"number"`
	Neighborhood string `json:"neighborhood"`
	Complement   string `json:"complement"`
	City         string `json:"city"`
	Province     string `json:"province"`
}
