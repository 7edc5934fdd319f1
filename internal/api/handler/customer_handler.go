package handler

import (
	"customer-directory/internal/api/handler/dto"
	"customer-directory/internal/domain/customer"
	"customer-directory/internal/pkg/apperrors"
	"errors"
	"log/slog"
	"net/http"
)

type CustomerHandler struct {
	service customer.CustomerService
	logger  *slog.Logger
}

func NewCustomerHandler(s customer.CustomerService, l *slog.Logger) *CustomerHandler {
	if s == nil {
		panic("customer service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &CustomerHandler{
		service: s,
		logger:  l.With("component", "CustomerHandler"),
	}
}

// ListCustomers handles GET /api/customers
// @Summary List customers
// @Description Returns every customer, most recently added first.
// @Tags Customers
// @Produce json
// @Success 200 {array} dto.CustomerResponse "List of customers"
// @Failure 500 {object} dto.ErrorResponse "Customer store could not be read"
// @Router /api/customers [get]
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received list customers request")

	customers, err := h.service.ListCustomers(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list customers", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewCustomerListResponse(customers)
	h.logger.InfoContext(r.Context(), "Customers listed successfully", slog.Int("count", len(resp)))
	respondJSON(w, http.StatusOK, resp)
}

// CreateCustomer handles POST /api/customers
// @Summary Create a customer
// @Description Adds a customer to the front of the directory. The email must not already be registered.
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body dto.CustomerRequest true "Customer to add"
// @Success 200 "Customer created"
// @Failure 400 {object} dto.ErrorResponse "Malformed body or missing/invalid field"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Failure 500 {object} dto.ErrorResponse "Customer store could not be read or written"
// @Router /api/customers [post]
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received create customer request")

	var req dto.CustomerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, err)
		return
	}

	if err := h.service.CreateCustomer(r.Context(), req.ToDomain()); err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrValidation) && !errors.Is(err, apperrors.ErrAlreadyExists) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to create customer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customer created successfully")
	w.WriteHeader(http.StatusOK)
}

// MethodNotAllowed answers any verb the customer routes do not support.
func (h *CustomerHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.logger.WarnContext(r.Context(), "Method not allowed", slog.String("method", r.Method))
	respondError(w, apperrors.ErrMethodNotAllowed)
}
