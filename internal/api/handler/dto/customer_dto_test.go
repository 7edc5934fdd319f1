package dto

import (
	"customer-directory/internal/domain/customer"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRequest_ToDomain(t *testing.T) {
	req := CustomerRequest{FirstName: "Grace", LastName: "Hopper", Email: "grace@navy.mil", BusinessName: "US Navy"}

	assert.Equal(t, customer.Customer{
		FirstName:    "Grace",
		LastName:     "Hopper",
		Email:        "grace@navy.mil",
		BusinessName: "US Navy",
	}, req.ToDomain())
}

func TestNewCustomerListResponse(t *testing.T) {
	t.Run("keeps order", func(t *testing.T) {
		resp := NewCustomerListResponse(customer.Collection{
			{FirstName: "Ada", LastName: "Lovelace", Email: "ada@x.com"},
			{FirstName: "Grace", LastName: "Hopper", Email: "grace@navy.mil"},
		})
		require.Len(t, resp, 2)
		assert.Equal(t, "ada@x.com", resp[0].Email)
		assert.Equal(t, "grace@navy.mil", resp[1].Email)
	})

	t.Run("empty collection encodes as an empty array", func(t *testing.T) {
		body, err := json.Marshal(NewCustomerListResponse(nil))
		require.NoError(t, err)
		assert.Equal(t, "[]", string(body))
	})

	t.Run("business name omitted when empty", func(t *testing.T) {
		body, err := json.Marshal(NewCustomerListResponse(customer.Collection{
			{FirstName: "Ada", LastName: "Lovelace", Email: "ada@x.com"},
		}))
		require.NoError(t, err)
		assert.Equal(t, `[{"firstName":"Ada","lastName":"Lovelace","email":"ada@x.com"}]`, string(body))
	})
}

func TestErrorResponseJSON(t *testing.T) {
	body, err := json.Marshal(NewErrorResponse("BadRequest", "Email is invalid"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"BadRequest","message":"Email is invalid"}`, string(body))
}
