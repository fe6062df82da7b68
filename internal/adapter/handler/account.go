package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AlejoJamC/banking-account/internal/core/service"
)

type AccountHandler struct {
	Withdrawals *service.WithdrawalService
	Transfers   *service.TransferService
	Accounts    *service.AccountService
}

type WithdrawRequest struct {
	AccountID string          `json:"account_id"`
	CardID    string          `json:"card_id"`
	Amount    decimal.Decimal `json:"amount"`
}

type TransferRequest struct {
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	CardID        string          `json:"card_id"`
	Amount        decimal.Decimal `json:"amount"`
}

// GetBalances lists the active accounts of the authenticated user.
func (h *AccountHandler) GetBalances(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uuid.UUID)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "missing user identity"})
	}

	balances, err := h.Accounts.BalancesByUser(c.Context(), userID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(fiber.Map{"accounts": balances})
}

// Withdraw debits the account in the path through the card in the body.
func (h *AccountHandler) Withdraw(c *fiber.Ctx) error {
	var req WithdrawRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Warn("invalid withdraw body", "error", err)
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if c.Params("id") != req.AccountID {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "path account id must match body account id",
		})
	}

	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid account id"})
	}
	cardID, err := uuid.Parse(req.CardID)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid card id"})
	}

	result, err := h.Withdrawals.Withdraw(c.Context(), accountID, cardID, req.Amount)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(result)
}

// Transfer moves money from the account in the path to the destination in
// the body.
func (h *AccountHandler) Transfer(c *fiber.Ctx) error {
	var req TransferRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Warn("invalid transfer body", "error", err)
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if c.Params("id") != req.FromAccountID {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "path account id must match body from_account_id",
		})
	}

	fromID, err := uuid.Parse(req.FromAccountID)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid from_account_id"})
	}
	toID, err := uuid.Parse(req.ToAccountID)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid to_account_id"})
	}
	cardID, err := uuid.Parse(req.CardID)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid card id"})
	}

	result, err := h.Transfers.Transfer(c.Context(), fromID, toID, cardID, req.Amount)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(result)
}

// GetHistory lists recent ledger entries of an account, newest first.
func (h *AccountHandler) GetHistory(c *fiber.Ctx) error {
	accountID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid account id"})
	}

	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	entries, err := h.Accounts.History(c.Context(), accountID, limit)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(fiber.Map{"transactions": entries})
}
