package services

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"storefront-service/database"
	"storefront-service/models"
)

var (
	nonDigit   = regexp.MustCompile(`\D`)
	localPhone = regexp.MustCompile(`^0\d{8,9}$`)
)

// NormalizePhone brings raw phone input into the local format: digits only,
// the 855 country prefix folded into a leading zero, a leading zero added
// when missing, at most 10 digits. Applied on every edit, idempotent.
func NormalizePhone(s string) string {
	v := nonDigit.ReplaceAllString(s, "")
	if strings.HasPrefix(v, "855") {
		v = "0" + v[3:]
	} else if v != "" && !strings.HasPrefix(v, "0") {
		v = "0" + v
	}
	if len(v) > 10 {
		v = v[:10]
	}
	return v
}

// InternationalPhone rewrites a single leading zero into the 855 country
// calling code, the format used for the t.me contact link.
func InternationalPhone(phone string) string {
	if strings.HasPrefix(phone, "0") {
		return "855" + phone[1:]
	}
	return phone
}

// ValidateCustomer checks the checkout form fields. It is a pure predicate:
// the profile is never mutated, errors are attached per field.
func ValidateCustomer(customer models.CustomerProfile) models.FieldErrors {
	var errs models.FieldErrors

	if strings.TrimSpace(customer.Name) == "" {
		errs.Name = "Full name is required"
	}

	phone := nonDigit.ReplaceAllString(customer.Phone, "")
	if phone == "" {
		errs.Phone = "Phone number is required"
	} else if !localPhone.MatchString(phone) {
		errs.Phone = "Must be 9-10 digits (ex: 0713949557)"
	}

	return errs
}

// CustomerService persists the pending checkout profile, one write per form
// edit, with input-time phone normalization.
type CustomerService struct {
	store  database.Store
	logger *zap.Logger
}

func NewCustomerService(store database.Store, logger *zap.Logger) *CustomerService {
	return &CustomerService{store: store, logger: logger}
}

// Get returns the saved profile together with its current validation state
// so the form can show inline errors on reload.
func (s *CustomerService) Get(ctx context.Context, session string) (models.CustomerProfile, models.FieldErrors, *ServiceError) {
	_, customer, err := s.store.Load(ctx, session)
	if err != nil {
		s.logger.Error("Failed to load customer", zap.Error(err))
		return models.CustomerProfile{}, models.FieldErrors{}, &ServiceError{StatusCode: 500, Message: "Failed to load customer"}
	}
	return customer, ValidateCustomer(customer), nil
}

// Save normalizes the phone and overwrites the customer record. Validation
// does not block saving; partial profiles persist between visits.
func (s *CustomerService) Save(ctx context.Context, session string, customer models.CustomerProfile) (models.CustomerProfile, models.FieldErrors, *ServiceError) {
	customer.Phone = NormalizePhone(customer.Phone)

	if err := s.store.SaveCustomer(ctx, session, customer); err != nil {
		s.logger.Error("Failed to save customer", zap.Error(err))
		return models.CustomerProfile{}, models.FieldErrors{}, &ServiceError{StatusCode: 500, Message: "Failed to save customer"}
	}
	return customer, ValidateCustomer(customer), nil
}
