package customer_test

import (
	"customer-directory/internal/domain/customer"
	"customer-directory/internal/pkg/apperrors"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCustomer() customer.Customer {
	return customer.Customer{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@x.com",
	}
}

func TestCustomer_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *customer.Customer)
		wantField string
		wantMsg   string
	}{
		{
			name:   "valid customer",
			mutate: func(c *customer.Customer) {},
		},
		{
			name:   "valid customer with business name",
			mutate: func(c *customer.Customer) { c.BusinessName = "Analytical Engines Ltd" },
		},
		{
			name:      "missing first name",
			mutate:    func(c *customer.Customer) { c.FirstName = "" },
			wantField: "firstName",
			wantMsg:   customer.MsgFirstNameRequired,
		},
		{
			name:      "missing last name",
			mutate:    func(c *customer.Customer) { c.LastName = "" },
			wantField: "lastName",
			wantMsg:   customer.MsgLastNameRequired,
		},
		{
			name:      "missing email",
			mutate:    func(c *customer.Customer) { c.Email = "" },
			wantField: "email",
			wantMsg:   customer.MsgEmailRequired,
		},
		{
			name:      "email without at sign",
			mutate:    func(c *customer.Customer) { c.Email = "ada.x.com" },
			wantField: "email",
			wantMsg:   customer.MsgEmailInvalid,
		},
		{
			name: "first failure wins when every field is missing",
			mutate: func(c *customer.Customer) {
				*c = customer.Customer{}
			},
			wantField: "firstName",
			wantMsg:   customer.MsgFirstNameRequired,
		},
		{
			name: "last name reported before bad email",
			mutate: func(c *customer.Customer) {
				c.LastName = ""
				c.Email = "nope"
			},
			wantField: "lastName",
			wantMsg:   customer.MsgLastNameRequired,
		},
		{
			name:   "whitespace is present, not missing",
			mutate: func(c *customer.Customer) { c.FirstName = " " },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCustomer()
			tt.mutate(&c)

			err := c.Validate()
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrValidation))

			var validationErr *apperrors.ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tt.wantField, validationErr.Field)
			assert.Equal(t, tt.wantMsg, validationErr.Message)
		})
	}
}

func TestCollection_FindByEmail(t *testing.T) {
	customers := customer.Collection{
		{FirstName: "Ada", LastName: "Lovelace", Email: "ada@x.com"},
		{FirstName: "Grace", LastName: "Hopper", Email: "grace@navy.mil"},
	}

	found, ok := customers.FindByEmail("grace@navy.mil")
	assert.True(t, ok)
	require.NotNil(t, found)
	assert.Equal(t, "Grace", found.FirstName)

	_, ok = customers.FindByEmail("GRACE@navy.mil")
	assert.False(t, ok, "email matching is case-sensitive")

	_, ok = customer.Collection(nil).FindByEmail("ada@x.com")
	assert.False(t, ok)
}

func TestCollection_Prepend(t *testing.T) {
	original := customer.Collection{
		{FirstName: "Grace", LastName: "Hopper", Email: "grace@navy.mil"},
	}
	added := customer.Customer{FirstName: "Ada", LastName: "Lovelace", Email: "ada@x.com"}

	updated := original.Prepend(added)

	require.Len(t, updated, 2)
	assert.Equal(t, added, updated[0])
	assert.Equal(t, "grace@navy.mil", updated[1].Email)
	assert.Len(t, original, 1, "prepend must not modify the receiver")

	fromEmpty := customer.Collection(nil).Prepend(added)
	assert.Equal(t, customer.Collection{added}, fromEmpty)
}
