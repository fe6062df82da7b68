package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/AlejoJamC/banking-account/internal/core/domain"
	"github.com/AlejoJamC/banking-account/internal/core/service"
)

// writeDomainError maps every domain failure kind onto its HTTP status.
// Nothing is swallowed: unknown errors become a logged 500.
func writeDomainError(c *fiber.Ctx, err error) error {
	var (
		accountNotFound   domain.AccountNotFoundError
		cardNotFound      domain.CardNotFoundError
		userNotFound      domain.UserNotFoundError
		cardMismatch      domain.CardAccountMismatchError
		inactiveCard      domain.InactiveCardError
		inactiveAccount   domain.InactiveAccountError
		selfTransfer      domain.SelfTransferError
		insufficientFunds domain.InsufficientFundsError
		versionConflict   domain.VersionConflictError
	)

	switch {
	case errors.As(err, &accountNotFound):
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(), "account_id": accountNotFound.AccountID,
		})
	case errors.As(err, &cardNotFound):
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(), "card_id": cardNotFound.CardID,
		})
	case errors.As(err, &userNotFound):
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &cardMismatch):
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error":      err.Error(),
			"card_id":    cardMismatch.CardID,
			"account_id": cardMismatch.AccountID,
		})
	case errors.As(err, &selfTransfer):
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(), "account_id": selfTransfer.AccountID,
		})
	case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, service.ErrBlankEmail):
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &inactiveCard):
		return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(), "card_id": inactiveCard.CardID,
		})
	case errors.As(err, &inactiveAccount):
		return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(), "account_id": inactiveAccount.AccountID,
		})
	case errors.As(err, &insufficientFunds):
		return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":      err.Error(),
			"account_id": insufficientFunds.AccountID,
			"available":  insufficientFunds.Available,
			"requested":  insufficientFunds.Requested,
			"shortfall":  insufficientFunds.Shortfall(),
		})
	case errors.As(err, &versionConflict):
		// Distinct and retryable: the caller reloads and tries again.
		return c.Status(http.StatusConflict).JSON(fiber.Map{
			"error": err.Error(), "account_id": versionConflict.AccountID,
		})
	default:
		slog.Error("unhandled error", "error", err, "path", c.Path())
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}
}
