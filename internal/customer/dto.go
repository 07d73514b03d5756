package customer

type AddressDTO struct {
	Zipcode      string `json:"zipcode"`
	Street       string `json:"street"`
	Number       int    `json:"number"`
	Neighborhood string `json:"neighborhood"`
	Complement   string `json:"complement"`
	City         string `json:"city"`
	Province     string `json:"province"`
}

type CustomerDTO struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Phone     string      `json:"phone"`
	CPF       string      `json:"cpf"`
	AvatarURL string      `json:"avatarUrl,omitempty"`
	Address   *AddressDTO `json:"address,omitempty"`
}

type CreateCustomerRequest struct {
	Name    string     `json:"name"`
	Phone   string     `json:"phone"`
	CPF     string     `json:"cpf"`
	Address AddressDTO `json:"address"`
}

type UpdateCustomerRequest struct {
	Name    string     `json:"name"`
	Phone   string     `json:"phone"`
	CPF     string     `json:"cpf"`
	Address AddressDTO `json:"address"`
}

type UpdateAvatarRequest struct {
	Image string `json:"image"`
}

type ListCustomersResponse struct {
	Customers []CustomerDTO `json:"customers"`
	Next      bool          `json:"next"`
	Previous  bool          `json:"previous"`
}
