package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/kameti-auth/internal/model"
)

// uniqueViolation is the SQLSTATE postgres reports for a unique constraint conflict.
const uniqueViolation = "23505"

const accountColumns = `id, user_name, email, password_digest, role, phone_number,
	trial_start_date, trial_end_date, created_at, updated_at`

var _ model.AccountStore = (*AccountRepository)(nil)

type AccountRepository struct {
	db *Connection
}

func NewAccountRepository(db *Connection) *AccountRepository {
	return &AccountRepository{
		db: db,
	}
}

func scanAccount(row pgx.Row) (model.Account, error) {
	var (
		account model.Account
		role    string
	)
	err := row.Scan(
		&account.ID, &account.UserName, &account.Email, &account.PasswordDigest, &role,
		&account.PhoneNumber, &account.TrialStartDate, &account.TrialEndDate,
		&account.CreatedAt, &account.UpdatedAt,
	)
	account.Role = model.Role(role)
	return account, err
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`

	account, err := scanAccount(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account by email: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	account, err := scanAccount(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account by id: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) Create(ctx context.Context, account model.Account) (model.Account, error) {
	query := `INSERT INTO accounts (` + accountColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING ` + accountColumns

	saved, err := scanAccount(r.db.QueryRow(ctx, query,
		account.ID, account.UserName, account.Email, account.PasswordDigest, string(account.Role),
		account.PhoneNumber, account.TrialStartDate, account.TrialEndDate,
		account.CreatedAt, account.UpdatedAt,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return model.Account{}, model.ErrAlreadyExists
		}
		return model.Account{}, fmt.Errorf("failed to create account: %w", err)
	}

	return saved, nil
}

// UpdateByEmail applies patch to the account and returns the updated row.
func (r *AccountRepository) UpdateByEmail(ctx context.Context, email string, patch model.AccountPatch) (model.Account, error) {
	query := `UPDATE accounts SET
				user_name = COALESCE($7, user_name),
				phone_number = COALESCE($8, phone_number),
				password_digest = COALESCE($2, password_digest),
				role = COALESCE($3, role),
				trial_start_date = CASE WHEN $4::boolean THEN $5::timestamptz ELSE trial_start_date END,
				trial_end_date = CASE WHEN $4::boolean THEN $6::timestamptz ELSE trial_end_date END,
				updated_at = now()
			  WHERE email = $1
			  RETURNING ` + accountColumns

	args := updateArgs(email, patch)
	account, err := scanAccount(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to update account: %w", err)
	}

	return account, nil
}

// List returns every account ordered by creation time.
func (r *AccountRepository) List(ctx context.Context) ([]model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]model.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	return accounts, nil
}

func updateArgs(email string, patch model.AccountPatch) []any {
	var role *string
	if patch.Role != nil {
		s := string(*patch.Role)
		role = &s
	}

	setTrial := patch.Trial != nil
	var trial model.TrialWindow
	if setTrial {
		trial = *patch.Trial
	}

	return []any{email, patch.PasswordDigest, role, setTrial, trial.Start, trial.End, patch.UserName, patch.PhoneNumber}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
