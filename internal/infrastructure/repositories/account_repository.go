package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mrozdorothy3-debug/swed/domain"
)

// AccountRepositoryImpl implements domain.AccountDirectory using GORM. The
// demo data model is one primary account per user.
type AccountRepositoryImpl struct {
	db *gorm.DB
}

// DBAccount represents the database model for Account (with GORM tags)
type DBAccount struct {
	ID          uint   `gorm:"primaryKey"`
	Username    string `gorm:"uniqueIndex;size:64"`
	Type        string `gorm:"size:32"`
	Balance     float64
	TransferFee float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (DBAccount) TableName() string {
	return "accounts"
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) domain.AccountDirectory {
	return &AccountRepositoryImpl{db: db}
}

// FindByUsername implements domain.AccountDirectory
func (r *AccountRepositoryImpl) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	var dbAccount DBAccount
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&dbAccount).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return &domain.Account{
		ID:          "primary",
		Type:        dbAccount.Type,
		Balance:     dbAccount.Balance,
		TransferFee: dbAccount.TransferFee,
	}, nil
}

// Save implements domain.AccountDirectory
func (r *AccountRepositoryImpl) Save(ctx context.Context, username string, account *domain.Account) error {
	var dbAccount DBAccount
	return r.db.WithContext(ctx).
		Where(DBAccount{Username: username}).
		Assign(map[string]interface{}{
			"type":         account.Type,
			"balance":      account.Balance,
			"transfer_fee": account.TransferFee,
		}).
		FirstOrCreate(&dbAccount).Error
}
