package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mrozdorothy3-debug/swed/domain"
)

// UserRepositoryImpl implements domain.UserDirectory using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;size:64"`
	FirstName    string `gorm:"size:128"`
	LastName     string `gorm:"size:128"`
	Email        string `gorm:"uniqueIndex;size:255"`
	PasswordHash string `gorm:"column:password"`
	Role         string `gorm:"index;size:64"`
	IsActive     bool   `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserDirectory {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserDirectory
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		return err
	}
	user.ID = dbUser.ID
	return nil
}

// FindByUsername implements domain.UserDirectory
func (r *UserRepositoryImpl) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&dbUser).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// List implements domain.UserDirectory
func (r *UserRepositoryImpl) List(ctx context.Context) ([]domain.User, error) {
	var dbUsers []DBUser
	if err := r.db.WithContext(ctx).Order("id").Find(&dbUsers).Error; err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(dbUsers))
	for i := range dbUsers {
		users = append(users, *r.dbToDomain(&dbUsers[i]))
	}
	return users, nil
}

// Count implements domain.UserDirectory
func (r *UserRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&DBUser{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:           user.ID,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
		IsActive:     user.IsActive,
	}
}

func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:           dbUser.ID,
		Username:     dbUser.Username,
		FirstName:    dbUser.FirstName,
		LastName:     dbUser.LastName,
		Email:        dbUser.Email,
		PasswordHash: dbUser.PasswordHash,
		Role:         dbUser.Role,
		IsActive:     dbUser.IsActive,
	}
}
