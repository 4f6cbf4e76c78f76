package services

import (
	"context"
	"errors"
	"log"

	"edumigrate/internal/adapters/persistence/models"
	"edumigrate/internal/adapters/persistence/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WalletService exposes the wallet ledger: balance reads, statements, and
// manual credits. Every balance change is paired with a ledger entry in
// the same transaction, so the balance always equals the ledger sum.
type WalletService struct {
	db         *gorm.DB
	walletRepo *repositories.WalletRepository
}

// NewWalletService creates a new wallet service
func NewWalletService(db *gorm.DB, walletRepo *repositories.WalletRepository) *WalletService {
	return &WalletService{db: db, walletRepo: walletRepo}
}

// WalletSummary is the balance view returned to owners
type WalletSummary struct {
	WalletID uint            `json:"wallet_id"`
	Balance  decimal.Decimal `json:"balance"`
}

// GetWallet gets (or lazily creates) the caller's wallet
func (s *WalletService) GetWallet(ctx context.Context, userID uint, userType string) *Result {
	wallet, err := s.walletRepo.FindOrCreate(ctx, userID, userType)
	if err != nil {
		return internalError(err)
	}
	return ok(fiber.StatusOK, "Wallet retrieved successfully", &WalletSummary{
		WalletID: wallet.ID,
		Balance:  wallet.Balance,
	})
}

// GetStatement gets the caller's ledger entries, newest first
func (s *WalletService) GetStatement(ctx context.Context, userID uint, userType string) *Result {
	wallet, err := s.walletRepo.GetByOwner(ctx, userID, userType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No wallet yet means an empty statement, not an error.
			return ok(fiber.StatusOK, "Wallet statement retrieved successfully", []*models.WalletTransaction{})
		}
		return internalError(err)
	}

	entries, err := s.walletRepo.GetTransactions(ctx, wallet.ID)
	if err != nil {
		return internalError(err)
	}
	return ok(fiber.StatusOK, "Wallet statement retrieved successfully", entries)
}

// CreditInput carries a manual admin credit
type CreditInput struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// Credit applies a manual credit to a user's wallet. The ledger entry and
// balance increment commit atomically.
func (s *WalletService) Credit(ctx context.Context, userID uint, userType string, input *CreditInput) *Result {
	if !input.Amount.IsPositive() {
		return fail(fiber.StatusBadRequest, "Amount must be positive")
	}

	var entry *models.WalletTransaction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wallet, err := repositories.FindOrCreateWalletTx(tx, userID, userType)
		if err != nil {
			return err
		}

		entry = &models.WalletTransaction{
			Type:        models.WalletTxCredit,
			Amount:      input.Amount,
			Status:      models.WalletTxCompleted,
			Reference:   "CR-" + uuid.NewString(),
			Description: input.Description,
		}
		return repositories.CreditTx(tx, wallet, entry)
	})
	if err != nil {
		log.Printf("❌ Failed to credit wallet for %s %d: %v", userType, userID, err)
		return internalError(err)
	}

	return ok(fiber.StatusCreated, "Wallet credited successfully", entry)
}

// WithdrawInput carries a withdrawal request
type WithdrawInput struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// Withdraw debits the caller's wallet. The ledger entry is recorded with a
// negative amount so the ledger sum still equals the balance, and the
// debit is rejected when it would overdraw the wallet.
func (s *WalletService) Withdraw(ctx context.Context, userID uint, userType string, input *WithdrawInput) *Result {
	if !input.Amount.IsPositive() {
		return fail(fiber.StatusBadRequest, "Amount must be positive")
	}

	var entry *models.WalletTransaction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wallet, err := repositories.FindOrCreateWalletTx(tx, userID, userType)
		if err != nil {
			return err
		}
		if wallet.Balance.LessThan(input.Amount) {
			return errInsufficientBalance
		}

		entry = &models.WalletTransaction{
			Type:        models.WalletTxWithdrawal,
			Amount:      input.Amount.Neg(),
			Status:      models.WalletTxCompleted,
			Reference:   "WD-" + uuid.NewString(),
			Description: input.Description,
		}
		return repositories.CreditTx(tx, wallet, entry)
	})
	if err != nil {
		if errors.Is(err, errInsufficientBalance) {
			return fail(fiber.StatusBadRequest, "Insufficient wallet balance")
		}
		log.Printf("❌ Failed to withdraw from wallet for %s %d: %v", userType, userID, err)
		return internalError(err)
	}

	return ok(fiber.StatusCreated, "Withdrawal recorded successfully", entry)
}

var errInsufficientBalance = errors.New("insufficient wallet balance")
