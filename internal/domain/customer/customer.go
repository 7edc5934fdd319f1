package customer

import (
	"customer-directory/internal/pkg/apperrors"
	"errors"

	"github.com/go-playground/validator/v10"
)

const (
	MsgFirstNameRequired = "First name is required"
	MsgLastNameRequired  = "Last name is required"
	MsgEmailRequired     = "Email is required"
	MsgEmailInvalid      = "Email is invalid"
)

type Customer struct {
	FirstName    string `json:"firstName" validate:"required"`
	LastName     string `json:"lastName" validate:"required"`
	Email        string `json:"email" validate:"required,contains=@"`
	BusinessName string `json:"businessName,omitempty"`
}

// Collection is ordered most recently added first.
type Collection []Customer

var validate = validator.New(validator.WithRequiredStructEnabled())

type rule struct {
	field   string
	message string
}

// Keyed by struct field and failing tag. Field order in Customer decides which
// rule is reported first.
var rules = map[string]map[string]rule{
	"FirstName": {"required": {"firstName", MsgFirstNameRequired}},
	"LastName":  {"required": {"lastName", MsgLastNameRequired}},
	"Email": {
		"required": {"email", MsgEmailRequired},
		"contains": {"email", MsgEmailInvalid},
	},
}

// Validate reports the first rule the customer breaks.
func (c *Customer) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperrors.NewValidationError("", err.Error())
	}

	first := fieldErrs[0]
	if r, ok := rules[first.StructField()][first.Tag()]; ok {
		return apperrors.NewValidationError(r.field, r.message)
	}
	return apperrors.NewValidationError(first.Field(), first.Error())
}

func (c Collection) FindByEmail(email string) (*Customer, bool) {
	for i := range c {
		if c[i].Email == email {
			return &c[i], true
		}
	}
	return nil, false
}

// Prepend returns a new collection with cust at the front. The receiver is not modified.
func (c Collection) Prepend(cust Customer) Collection {
	out := make(Collection, 0, len(c)+1)
	out = append(out, cust)
	return append(out, c...)
}
