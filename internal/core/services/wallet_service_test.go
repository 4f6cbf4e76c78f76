package services

import (
	"context"
	"testing"

	"edumigrate/internal/adapters/persistence/models"
	"edumigrate/internal/adapters/persistence/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetWallet_LazyCreate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewWalletService(db, repositories.NewWalletRepository(db))
	ctx := context.Background()

	result := svc.GetWallet(ctx, 1, models.UserTypeMember)
	require.True(t, result.Success)

	summary := result.Data.(*WalletSummary)
	assert.NotZero(t, summary.WalletID)
	assert.True(t, summary.Balance.IsZero())

	// The same owner always gets the same wallet.
	again := svc.GetWallet(ctx, 1, models.UserTypeMember)
	assert.Equal(t, summary.WalletID, again.Data.(*WalletSummary).WalletID)

	// A different user type is a different wallet.
	other := svc.GetWallet(ctx, 1, models.UserTypeAgent)
	assert.NotEqual(t, summary.WalletID, other.Data.(*WalletSummary).WalletID)
}

func TestGetStatement_NoWalletIsEmpty(t *testing.T) {
	db := setupTestDB(t)
	svc := NewWalletService(db, repositories.NewWalletRepository(db))

	result := svc.GetStatement(context.Background(), 42, models.UserTypeMember)
	require.True(t, result.Success)
	assert.Equal(t, fiber.StatusOK, result.StatusCode)
	assert.Empty(t, result.Data.([]*models.WalletTransaction))
}

func TestCredit(t *testing.T) {
	db := setupTestDB(t)
	walletRepo := repositories.NewWalletRepository(db)
	svc := NewWalletService(db, walletRepo)
	ctx := context.Background()

	t.Run("RejectsNonPositiveAmount", func(t *testing.T) {
		result := svc.Credit(ctx, 1, models.UserTypeMember, &CreditInput{Amount: decimal.Zero})
		assert.False(t, result.Success)
		assert.Equal(t, fiber.StatusBadRequest, result.StatusCode)
		assert.Equal(t, "Amount must be positive", result.Message)
	})

	t.Run("CreditsBalanceAndLedgerTogether", func(t *testing.T) {
		result := svc.Credit(ctx, 1, models.UserTypeMember, &CreditInput{
			Amount:      decimal.NewFromInt(500),
			Description: "Promo credit",
		})
		require.True(t, result.Success)
		assert.Equal(t, fiber.StatusCreated, result.StatusCode)

		entry := result.Data.(*models.WalletTransaction)
		assert.Equal(t, models.WalletTxCredit, entry.Type)
		assert.Contains(t, entry.Reference, "CR-")

		wallet, err := walletRepo.GetByOwner(ctx, 1, models.UserTypeMember)
		require.NoError(t, err)
		assert.True(t, wallet.Balance.Equal(decimal.NewFromInt(500)))
	})
}

func TestWithdraw(t *testing.T) {
	db := setupTestDB(t)
	walletRepo := repositories.NewWalletRepository(db)
	svc := NewWalletService(db, walletRepo)
	ctx := context.Background()

	require.True(t, svc.Credit(ctx, 1, models.UserTypeAgent, &CreditInput{Amount: decimal.NewFromInt(300)}).Success)

	t.Run("RejectsOverdraw", func(t *testing.T) {
		result := svc.Withdraw(ctx, 1, models.UserTypeAgent, &WithdrawInput{Amount: decimal.NewFromInt(400)})
		assert.False(t, result.Success)
		assert.Equal(t, fiber.StatusBadRequest, result.StatusCode)
		assert.Equal(t, "Insufficient wallet balance", result.Message)

		wallet, err := walletRepo.GetByOwner(ctx, 1, models.UserTypeAgent)
		require.NoError(t, err)
		assert.True(t, wallet.Balance.Equal(decimal.NewFromInt(300)))
	})

	t.Run("RecordsNegativeLedgerEntry", func(t *testing.T) {
		result := svc.Withdraw(ctx, 1, models.UserTypeAgent, &WithdrawInput{
			Amount:      decimal.NewFromInt(120),
			Description: "Payout",
		})
		require.True(t, result.Success)

		entry := result.Data.(*models.WalletTransaction)
		assert.Equal(t, models.WalletTxWithdrawal, entry.Type)
		assert.True(t, entry.Amount.Equal(decimal.NewFromInt(-120)))

		wallet, err := walletRepo.GetByOwner(ctx, 1, models.UserTypeAgent)
		require.NoError(t, err)
		assert.True(t, wallet.Balance.Equal(decimal.NewFromInt(180)))
	})

	t.Run("LedgerSumEqualsBalance", func(t *testing.T) {
		wallet, err := walletRepo.GetByOwner(ctx, 1, models.UserTypeAgent)
		require.NoError(t, err)

		sum, err := walletRepo.SumTransactions(ctx, wallet.ID)
		require.NoError(t, err)
		assert.True(t, sum.Equal(wallet.Balance), "ledger sum %s != balance %s", sum, wallet.Balance)
	})
}
