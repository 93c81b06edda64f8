package gateway

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/domain"
	"github.com/go-playground/validator/v10"
)

type AddToCartInput struct {
	UserID    string      `validate:"required"`
	ProductID string      `validate:"required"`
	Size      domain.Size `validate:"required"`
	Quantity  int         `validate:"gte=1,lte=99"`
}

type ReviewInput struct {
	UserID    string `validate:"required"`
	UserName  string
	ProductID string `validate:"required"`
	Rating    int    `validate:"gte=1,lte=5"`
	Comment   string `validate:"max=2000"`
}

type ReviewUpdate struct {
	UserID   string `validate:"required"`
	ReviewID string `validate:"required"`
	Rating   int    `validate:"gte=1,lte=5"`
	Comment  string `validate:"max=2000"`
}

// CheckoutInput carries the total the shopper saw. It must match the cart
// total at the time of the order.
type CheckoutInput struct {
	UserID          string `validate:"required"`
	ShippingAddress string `validate:"required,max=500"`
	Total           int64  `validate:"gte=0"`
	IdempotencyKey  string `validate:"max=128"`
}

type AddressInput struct {
	ID         string
	UserID     string `validate:"required"`
	Street     string `validate:"required,max=200"`
	City       string `validate:"max=100"`
	State      string `validate:"max=100"`
	PostalCode string `validate:"max=20"`
	IsDefault  bool
}

func (a AddressInput) address() domain.Address {
	return domain.Address{
		ID:         a.ID,
		UserID:     a.UserID,
		Street:     strings.TrimSpace(a.Street),
		City:       strings.TrimSpace(a.City),
		State:      strings.TrimSpace(a.State),
		PostalCode: strings.TrimSpace(a.PostalCode),
		IsDefault:  a.IsDefault,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func check(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s is too long", field)
	}
	return fmt.Sprintf("%s failed %s", field, fe.Tag())
}
