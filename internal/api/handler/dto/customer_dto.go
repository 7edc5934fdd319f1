package dto

import "customer-directory/internal/domain/customer"

type CustomerRequest struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	BusinessName string `json:"businessName,omitempty"`
}

func (r CustomerRequest) ToDomain() customer.Customer {
	return customer.Customer{
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Email:        r.Email,
		BusinessName: r.BusinessName,
	}
}

type CustomerResponse struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	BusinessName string `json:"businessName,omitempty"`
}

func NewCustomerResponse(cust customer.Customer) CustomerResponse {
	return CustomerResponse{
		FirstName:    cust.FirstName,
		LastName:     cust.LastName,
		Email:        cust.Email,
		BusinessName: cust.BusinessName,
	}
}

func NewCustomerListResponse(customers customer.Collection) []CustomerResponse {
	resp := make([]CustomerResponse, len(customers))
	for i, cust := range customers {
		resp[i] = NewCustomerResponse(cust)
	}
	return resp
}
