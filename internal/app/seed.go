package app

import (
	"context"
	"fmt"
	"log"

	"github.com/mrozdorothy3-debug/swed/domain"
)

type seedUser struct {
	user     domain.User
	password string
	account  domain.Account
}

// demo fixtures from the original seeding scripts
var seedUsers = []seedUser{
	{
		user: domain.User{
			Username:  "neil",
			FirstName: "Neil",
			LastName:  "Harryman",
			Email:     "neil.harryman@example.com",
			Role:      domain.RoleCustomer,
			IsActive:  true,
		},
		password: "$Neil$savinGGOD11$",
		account:  domain.Account{ID: "primary", Type: "checking", Balance: 30000, TransferFee: 3000},
	},
	{
		user: domain.User{
			Username:  "lucy",
			FirstName: "Lucy",
			LastName:  "Harrold",
			Email:     "lucy.harrold@example.com",
			Role:      domain.RoleCustomer,
			IsActive:  true,
		},
		password: "$LUCYharrold001",
		account:  domain.Account{ID: "primary", Type: "checking", Balance: 27980, TransferFee: 1500},
	},
	{
		user: domain.User{
			Username:  "admin",
			FirstName: "System",
			LastName:  "Administrator",
			Email:     "admin@bwank.com",
			Role:      domain.RoleAdmin,
			IsActive:  true,
		},
		password: "admin123",
		account:  domain.Account{ID: "primary", Type: "checking", Balance: 0, TransferFee: 0},
	},
}

// Seed populates the demo users and accounts. Idempotent: an already-seeded
// database is left alone.
func Seed(userRepo domain.UserDirectory, accountRepo domain.AccountDirectory, passwordSvc domain.PasswordService) error {
	ctx := context.Background()

	n, err := userRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed: count users: %w", err)
	}
	if n > 0 {
		return nil
	}

	for _, su := range seedUsers {
		hash, err := passwordSvc.Hash(su.password)
		if err != nil {
			return fmt.Errorf("seed: hash password for %s: %w", su.user.Username, err)
		}
		u := su.user
		u.PasswordHash = hash
		if err := userRepo.Create(ctx, &u); err != nil {
			return fmt.Errorf("seed: create user %s: %w", u.Username, err)
		}
		acct := su.account
		if err := accountRepo.Save(ctx, u.Username, &acct); err != nil {
			return fmt.Errorf("seed: create account for %s: %w", u.Username, err)
		}
		log.Printf("seed: created %s user %s", u.Role, u.Username)
	}

	return nil
}
