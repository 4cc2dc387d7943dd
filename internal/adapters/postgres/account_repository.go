package postgres_adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/ianmeigh/property-direct-backend/internal/contextkeys"
	"github.com/ianmeigh/property-direct-backend/internal/core/domain"
	"github.com/ianmeigh/property-direct-backend/internal/core/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AccountRepository implements port.AccountRepositoryPort.
type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) (*AccountRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &AccountRepository{pool: pool}, nil
}

// CreateWithProfile inserts the account and its empty profile together.
func (r *AccountRepository) CreateWithProfile(ctx context.Context, account *domain.Account, profile *domain.Profile) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "AccountRepository",
		"method":     "CreateWithProfile",
		"account_id": account.ID.String(),
		"username":   account.Username,
	})

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		repoLogger.Error("Failed to begin transaction", err, nil)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	accountQuery := `INSERT INTO accounts (id, username, password_hash, is_seller, created_at) VALUES ($1, $2, $3, $4, $5)`
	if _, err := tx.Exec(ctx, accountQuery, account.ID, account.Username, account.PasswordHash, account.IsSeller, account.CreatedAt); err != nil {
		if domainErr := translateWriteError(err); domainErr != nil {
			repoLogger.Warn("Account violates a constraint", port.Fields{"error": err.Error()})
			return domainErr
		}
		repoLogger.Error("Failed to create account", err, port.Fields{"query": accountQuery})
		return fmt.Errorf("failed to create account: %w", err)
	}

	profileQuery := `INSERT INTO profiles (id, owner_id, name, description, email, telephone_landline, telephone_mobile, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = tx.Exec(ctx, profileQuery,
		profile.ID, profile.OwnerID, profile.Name, profile.Description, profile.Email,
		profile.TelephoneLandline, profile.TelephoneMobile, profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		repoLogger.Error("Failed to create profile", err, port.Fields{"query": profileQuery})
		return fmt.Errorf("failed to create profile: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		repoLogger.Error("Failed to commit transaction", err, nil)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	repoLogger.Debug("Account and profile created.", port.Fields{"profile_id": profile.ID.String()})
	return nil
}

// FindByUsername returns (nil, nil) when no account has that username.
func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "AccountRepository",
		"method":    "FindByUsername",
		"username":  username,
	})

	query := `SELECT id, username, password_hash, is_seller, created_at FROM accounts WHERE username = $1`
	account, err := scanAccount(r.pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Debug("Account not found by username.", nil)
			return nil, nil
		}
		repoLogger.Error("Failed to find account by username", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to find account by username: %w", err)
	}
	return account, nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "AccountRepository",
		"method":     "FindByID",
		"account_id": id.String(),
	})

	query := `SELECT id, username, password_hash, is_seller, created_at FROM accounts WHERE id = $1`
	account, err := scanAccount(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Debug("Account not found by ID.", nil)
			return nil, nil
		}
		repoLogger.Error("Failed to find account by ID", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to find account by id: %w", err)
	}
	return account, nil
}

// DeleteAccount removes the profile and then the account. Listings and
// relationship rows go with the account through ON DELETE CASCADE.
func (r *AccountRepository) DeleteAccount(ctx context.Context, accountID uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "AccountRepository",
		"method":     "DeleteAccount",
		"account_id": accountID.String(),
	})

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		repoLogger.Error("Failed to begin transaction", err, nil)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM profiles WHERE owner_id = $1`, accountID); err != nil {
		repoLogger.Error("Failed to delete profile", err, nil)
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, accountID)
	if err != nil {
		repoLogger.Error("Failed to delete account", err, nil)
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		repoLogger.Warn("Account to delete does not exist.", nil)
		return domain.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		repoLogger.Error("Failed to commit transaction", err, nil)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	repoLogger.Info("Account deleted.", nil)
	return nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	if err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.IsSeller, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}
