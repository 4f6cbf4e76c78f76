package repositories

import (
	"context"

	"edumigrate/internal/adapters/persistence/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WalletRepository handles wallet and ledger data access
type WalletRepository struct {
	db *gorm.DB
}

// NewWalletRepository creates a new wallet repository
func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

// FindOrCreate returns the wallet for (userID, userType), creating it with
// a zero balance on first use.
func (r *WalletRepository) FindOrCreate(ctx context.Context, userID uint, userType string) (*models.Wallet, error) {
	return FindOrCreateWalletTx(r.db.WithContext(ctx), userID, userType)
}

// FindOrCreateWalletTx is the tx-scoped variant used inside the transition engine
func FindOrCreateWalletTx(tx *gorm.DB, userID uint, userType string) (*models.Wallet, error) {
	var wallet models.Wallet
	err := tx.
		Where(models.Wallet{UserID: userID, UserType: userType}).
		Attrs(models.Wallet{Balance: decimal.Zero}).
		FirstOrCreate(&wallet).Error
	return &wallet, err
}

// GetByOwner gets a wallet by owner without creating it
func (r *WalletRepository) GetByOwner(ctx context.Context, userID uint, userType string) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND user_type = ?", userID, userType).
		First(&wallet).Error
	return &wallet, err
}

// CreditTx records a ledger row and applies the matching balance increment
// inside the caller's transaction. The increment is done in SQL
// (balance = balance + amount) so concurrent credits never lose updates.
func CreditTx(tx *gorm.DB, wallet *models.Wallet, entry *models.WalletTransaction) error {
	entry.WalletID = wallet.ID
	if err := tx.Create(entry).Error; err != nil {
		return err
	}

	return tx.Model(&models.Wallet{}).
		Where("id = ?", wallet.ID).
		UpdateColumn("balance", gorm.Expr("balance + ?", entry.Amount)).Error
}

// GetTransactions gets the ledger entries for a wallet, newest first
func (r *WalletRepository) GetTransactions(ctx context.Context, walletID uint) ([]*models.WalletTransaction, error) {
	var entries []*models.WalletTransaction
	err := r.db.WithContext(ctx).
		Where("wallet_id = ?", walletID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

// SumTransactions sums the ledger amounts for a wallet (audit check)
func (r *WalletRepository) SumTransactions(ctx context.Context, walletID uint) (decimal.Decimal, error) {
	var entries []*models.WalletTransaction
	err := r.db.WithContext(ctx).
		Where("wallet_id = ?", walletID).
		Find(&entries).Error
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Amount)
	}
	return total, nil
}
