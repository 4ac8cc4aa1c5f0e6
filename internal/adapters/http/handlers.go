package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/weddingdesk/core/internal/application/services"
	"github.com/weddingdesk/core/internal/domain/entities"
	"github.com/weddingdesk/core/internal/infrastructure/logger"
	"github.com/weddingdesk/core/internal/ports"
)

// MessageResponse is a plain acknowledgment body
type MessageResponse struct {
	Message string `json:"message"`
}

// organizerID extracts the authenticated organizer from the request
// context; the auth middleware stores it as a string.
func organizerID(c echo.Context) uuid.UUID {
	raw, ok := c.Get("organizer_id").(string)
	if !ok {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func pathID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid identifier")
	}
	return id, nil
}

// AuthHandler handles registration and login
type AuthHandler struct {
	authService *services.AuthService
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

// Register handles organizer registration
func (h *AuthHandler) Register(c echo.Context) error {
	var req ports.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	response, err := h.authService.Register(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, entities.ErrEmailTaken) {
			return echo.NewHTTPError(http.StatusConflict, "Email already registered")
		}
		h.logger.Errorw("registration failed", "error", err, "email", req.Email)
		return echo.NewHTTPError(http.StatusInternalServerError, "Registration failed")
	}

	return c.JSON(http.StatusCreated, response)
}

// Login handles organizer login
func (h *AuthHandler) Login(c echo.Context) error {
	var req ports.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	response, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		h.logger.Warnw("login failed", "email", req.Email)
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	return c.JSON(http.StatusOK, response)
}

// WeddingHandler handles wedding requests
type WeddingHandler struct {
	weddingService *services.WeddingService
	logger         *logger.Logger
}

// NewWeddingHandler creates a new wedding handler
func NewWeddingHandler(weddingService *services.WeddingService, logger *logger.Logger) *WeddingHandler {
	return &WeddingHandler{weddingService: weddingService, logger: logger}
}

// ListWeddings returns the organizer's weddings
func (h *WeddingHandler) ListWeddings(c echo.Context) error {
	weddings, err := h.weddingService.ListWeddings(c.Request().Context(), organizerID(c))
	if err != nil {
		h.logger.Errorw("list weddings failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list weddings")
	}
	return c.JSON(http.StatusOK, weddings)
}

// CreateWedding creates a wedding
func (h *WeddingHandler) CreateWedding(c echo.Context) error {
	var req ports.CreateWeddingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	wedding, err := h.weddingService.CreateWedding(c.Request().Context(), organizerID(c), req)
	if err != nil {
		h.logger.Errorw("create wedding failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create wedding")
	}
	return c.JSON(http.StatusCreated, wedding)
}

// GetWedding returns one wedding
func (h *WeddingHandler) GetWedding(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	wedding, err := h.weddingService.GetWedding(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Wedding not found")
	}
	if wedding.OrganizerID != organizerID(c) {
		return echo.NewHTTPError(http.StatusForbidden, "Not your wedding")
	}
	return c.JSON(http.StatusOK, wedding)
}

// UpdateWedding applies a partial update
func (h *WeddingHandler) UpdateWedding(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req ports.UpdateWeddingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	wedding, err := h.weddingService.UpdateWedding(c.Request().Context(), id, req)
	if err != nil {
		if errors.Is(err, entities.ErrWeddingNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Wedding not found")
		}
		h.logger.Errorw("update wedding failed", "error", err, "wedding_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update wedding")
	}
	return c.JSON(http.StatusOK, wedding)
}

// DeleteWedding removes a wedding
func (h *WeddingHandler) DeleteWedding(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.weddingService.DeleteWedding(c.Request().Context(), id); err != nil {
		if errors.Is(err, entities.ErrWeddingNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Wedding not found")
		}
		h.logger.Errorw("delete wedding failed", "error", err, "wedding_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete wedding")
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Wedding deleted"})
}

// PaymentHandler handles payment requests
type PaymentHandler struct {
	paymentService *services.PaymentService
	logger         *logger.Logger
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *services.PaymentService, logger *logger.Logger) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, logger: logger}
}

// ListPayments returns a wedding's payments
func (h *PaymentHandler) ListPayments(c echo.Context) error {
	weddingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid wedding identifier")
	}

	payments, err := h.paymentService.ListPayments(c.Request().Context(), weddingID)
	if err != nil {
		h.logger.Errorw("list payments failed", "error", err, "wedding_id", weddingID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list payments")
	}
	return c.JSON(http.StatusOK, payments)
}

// CreatePayment records a payment
func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	var req ports.CreatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	payment, err := h.paymentService.CreatePayment(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, entities.ErrWeddingNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Wedding not found")
		}
		h.logger.Errorw("create payment failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create payment")
	}
	return c.JSON(http.StatusCreated, payment)
}

// UpdatePayment applies a partial update
func (h *PaymentHandler) UpdatePayment(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req ports.UpdatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	payment, err := h.paymentService.UpdatePayment(c.Request().Context(), id, req)
	if err != nil {
		if errors.Is(err, entities.ErrPaymentNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Payment not found")
		}
		h.logger.Errorw("update payment failed", "error", err, "payment_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update payment")
	}
	return c.JSON(http.StatusOK, payment)
}

// DeletePayment removes a payment
func (h *PaymentHandler) DeletePayment(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.paymentService.DeletePayment(c.Request().Context(), id); err != nil {
		if errors.Is(err, entities.ErrPaymentNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Payment not found")
		}
		h.logger.Errorw("delete payment failed", "error", err, "payment_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete payment")
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Payment deleted"})
}
