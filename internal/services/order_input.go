package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"reunion-shop/internal/domain"

	"github.com/go-playground/validator/v10"
)

const (
	maxNoteLength  = 500
	minLookupInput = 4
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type CartItem struct {
	VariantID string `json:"variantId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1,max=99"`
}

// PlaceOrderInput is the buyer's checkout submission.
type PlaceOrderInput struct {
	Nickname        string                `json:"nickname" validate:"required,max=50"`
	Phone           string                `json:"phone" validate:"required,min=6,max=20"`
	DeliveryMethod  domain.DeliveryMethod `json:"deliveryMethod" validate:"required,oneof=pickup delivery"`
	DeliveryName    string                `json:"deliveryName" validate:"max=50"`
	DeliveryPhone   string                `json:"deliveryPhone" validate:"max=20"`
	DeliveryAddress string                `json:"deliveryAddress" validate:"max=200"`
	Note            string                `json:"note" validate:"max=500"`
	Items           []CartItem            `json:"items" validate:"required,min=1,max=20,dive"`
}

// Validate trims the text fields, then checks field limits, the delivery-only
// fields and that no variant appears on two lines. Limits apply to the
// trimmed values, which are what gets stored.
func (in *PlaceOrderInput) Validate() error {
	verr := domain.NewValidationError()
	in.normalize()

	if err := validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			verr.Add(fieldPath(fe), fieldMessage(fe))
		}
	}

	if in.DeliveryMethod == domain.DeliveryShipping {
		if strings.TrimSpace(in.DeliveryName) == "" {
			verr.Add("deliveryName", "recipient name is required for delivery")
		}
		if strings.TrimSpace(in.DeliveryPhone) == "" {
			verr.Add("deliveryPhone", "recipient phone is required for delivery")
		}
		if strings.TrimSpace(in.DeliveryAddress) == "" {
			verr.Add("deliveryAddress", "delivery address is required for delivery")
		}
	}

	seen := make(map[string]int, len(in.Items))
	for i, item := range in.Items {
		if item.VariantID == "" {
			continue
		}
		if first, dup := seen[item.VariantID]; dup {
			verr.Add(fmt.Sprintf("items[%d].variantId", i), fmt.Sprintf("duplicates items[%d]", first))
			continue
		}
		seen[item.VariantID] = i
	}

	return verr.OrNil()
}

func (in *PlaceOrderInput) normalize() {
	in.Nickname = strings.TrimSpace(in.Nickname)
	in.Phone = strings.TrimSpace(in.Phone)
	in.DeliveryName = strings.TrimSpace(in.DeliveryName)
	in.DeliveryPhone = strings.TrimSpace(in.DeliveryPhone)
	in.DeliveryAddress = strings.TrimSpace(in.DeliveryAddress)
	in.Note = strings.TrimSpace(in.Note)
}

func (in *PlaceOrderInput) variantIDs() []string {
	ids := make([]string, 0, len(in.Items))
	for _, item := range in.Items {
		ids = append(ids, item.VariantID)
	}
	return ids
}

// deliveryFields returns the recipient fields, all nil for pickup orders.
func (in *PlaceOrderInput) deliveryFields() (name, phone, address *string) {
	if in.DeliveryMethod != domain.DeliveryShipping {
		return nil, nil, nil
	}
	return trimmedPtr(in.DeliveryName), trimmedPtr(in.DeliveryPhone), trimmedPtr(in.DeliveryAddress)
}

func trimmedPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min", "max":
		bound := "at least"
		if fe.Tag() == "max" {
			bound = "at most"
		}
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("must be %s %s characters", bound, fe.Param())
		case reflect.Slice:
			return fmt.Sprintf("must contain %s %s items", bound, fe.Param())
		default:
			return fmt.Sprintf("must be %s %s", bound, fe.Param())
		}
	}
	return "is invalid"
}
