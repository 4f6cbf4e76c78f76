package handlers

import (
	"edumigrate/internal/core/services"
	"edumigrate/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// WalletHandler handles wallet endpoints
type WalletHandler struct {
	walletService *services.WalletService
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(walletService *services.WalletService) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

// Get handles reading the caller's wallet balance
// @Summary Get my wallet
// @Tags Wallet
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /wallet [get]
func (h *WalletHandler) Get(c *fiber.Ctx) error {
	userID, userType, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	return sendResult(c, h.walletService.GetWallet(c.Context(), userID, userType))
}

// Statement handles reading the caller's ledger entries
// @Summary Get my wallet statement
// @Tags Wallet
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /wallet/transactions [get]
func (h *WalletHandler) Statement(c *fiber.Ctx) error {
	userID, userType, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	return sendResult(c, h.walletService.GetStatement(c.Context(), userID, userType))
}

// Withdraw handles the caller debiting their wallet
// @Summary Withdraw from my wallet
// @Tags Wallet
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.WithdrawInput true "Withdrawal data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /wallet/withdraw [post]
func (h *WalletHandler) Withdraw(c *fiber.Ctx) error {
	userID, userType, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.WithdrawInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	return sendResult(c, h.walletService.Withdraw(c.Context(), userID, userType, &input))
}

// AdminCreditRequest represents an admin manual credit request
type AdminCreditRequest struct {
	UserID   uint   `json:"user_id"`
	UserType string `json:"user_type"`
	services.CreditInput
}

// AdminCredit handles an admin crediting any user's wallet
// @Summary Credit a wallet (admin)
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AdminCreditRequest true "Credit data"
// @Success 201 {object} response.Response
// @Router /admin/wallets/credit [post]
func (h *WalletHandler) AdminCredit(c *fiber.Ctx) error {
	var req AdminCreditRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.UserID == 0 || req.UserType == "" {
		return response.BadRequest(c, "user_id and user_type are required")
	}

	return sendResult(c, h.walletService.Credit(c.Context(), req.UserID, req.UserType, &req.CreditInput))
}
