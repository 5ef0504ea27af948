// Package products implements the product add/edit/delete flows.
package products

import (
	"context"
	"errors"
	"log/slog"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/mmcdole/storefront/internal/domain"
)

// Authenticator reports whether a user session is active
type Authenticator interface {
	Authenticated() bool
}

// Form holds the raw text of the product form fields
type Form struct {
	Title       string
	Description string
	Price       string
	Stock       string
	Brand       string
	Category    string
}

// FormFromProduct pre-fills the form for editing
func FormFromProduct(p domain.Product) Form {
	d := domain.DraftFromProduct(p)
	return Form{
		Title:       d.Title,
		Description: d.Description,
		Price:       d.Price.StringFixed(2),
		Stock:       strconv.Itoa(d.Stock),
		Brand:       d.Brand,
		Category:    d.Category,
	}
}

// Service validates drafts and forwards CRUD calls to the catalog API
type Service struct {
	repo     domain.ProductRepository
	auth     Authenticator
	validate *validator.Validate
	logger   *slog.Logger
}

// NewService creates a new products service
func NewService(repo domain.ProductRepository, auth Authenticator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:     repo,
		auth:     auth,
		validate: newValidator(),
		logger:   logger.With("component", "products"),
	}
}

// newValidator reports fields by their json name and validates decimals as floats
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// Get returns a single product; no session needed
func (s *Service) Get(ctx context.Context, id int) (*domain.Product, error) {
	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		s.logger.Warn("failed to get product", "id", id, "error", err)
		return nil, err
	}
	return p, nil
}

// Create validates and adds a product
func (s *Service) Create(ctx context.Context, draft domain.ProductDraft) (*domain.Product, error) {
	if err := s.precheck(draft); err != nil {
		return nil, err
	}
	p, err := s.repo.AddProduct(ctx, draft)
	if err != nil {
		s.logger.Error("failed to create product", "error", err)
		return nil, err
	}
	s.logger.Info("product created", "id", p.ID, "title", p.Title)
	return p, nil
}

// Update validates and saves changes to product id
func (s *Service) Update(ctx context.Context, id int, draft domain.ProductDraft) (*domain.Product, error) {
	if err := s.precheck(draft); err != nil {
		return nil, err
	}
	p, err := s.repo.UpdateProduct(ctx, id, draft)
	if err != nil {
		s.logger.Error("failed to update product", "id", id, "error", err)
		return nil, err
	}
	s.logger.Info("product updated", "id", id)
	return p, nil
}

// Delete removes product id
func (s *Service) Delete(ctx context.Context, id int) error {
	if !s.authenticated() {
		return domain.ErrUnauthenticated
	}
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		s.logger.Error("failed to delete product", "id", id, "error", err)
		return err
	}
	return nil
}

// Validate checks a draft against its field rules
func (s *Service) Validate(draft domain.ProductDraft) error {
	err := s.validate.Struct(draft)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	fields := make(map[string]string, len(validationErrors))
	for _, fieldErr := range validationErrors {
		fields[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
	}
	s.logger.Debug("draft rejected", "errors", fields)
	return domain.ValidationError{Fields: fields}
}

// ParseDraft converts form text into a validated draft.
// Conversion and rule failures are reported together.
func (s *Service) ParseDraft(form Form) (domain.ProductDraft, error) {
	fields := make(map[string]string)
	draft := domain.ProductDraft{
		Title:       strings.TrimSpace(form.Title),
		Description: strings.TrimSpace(form.Description),
		Brand:       strings.TrimSpace(form.Brand),
		Category:    strings.TrimSpace(form.Category),
	}

	if raw := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(form.Price), "$")); raw == "" {
		fields["price"] = "failed on rule: required"
	} else if price, err := decimal.NewFromString(raw); err != nil {
		fields["price"] = "must be a number"
	} else {
		draft.Price = price.Round(2)
	}

	if raw := strings.TrimSpace(form.Stock); raw == "" {
		fields["stock"] = "failed on rule: required"
	} else if stock, err := strconv.Atoi(raw); err != nil {
		fields["stock"] = "must be a whole number"
	} else {
		draft.Stock = stock
	}

	if err := s.Validate(draft); err != nil {
		var ve domain.ValidationError
		if !errors.As(err, &ve) {
			return draft, err
		}
		for field, rule := range ve.Fields {
			if _, seen := fields[field]; !seen {
				fields[field] = rule
			}
		}
	}

	if len(fields) > 0 {
		return draft, domain.ValidationError{Fields: fields}
	}
	return draft, nil
}

func (s *Service) precheck(draft domain.ProductDraft) error {
	if !s.authenticated() {
		return domain.ErrUnauthenticated
	}
	return s.Validate(draft)
}

func (s *Service) authenticated() bool {
	return s.auth != nil && s.auth.Authenticated()
}
