package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/vitrine/internal/database"
	"github.com/MrJamesThe3rd/vitrine/internal/wallet"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func (s *Store) GetBalance(ctx context.Context, userID int64) (*wallet.Balance, error) {
	query := `
		SELECT user_id, total, available, pending, updated_at
		FROM wallet_balances
		WHERE user_id = $1
	`

	var b wallet.Balance

	err := database.Conn(ctx, s.db).QueryRowContext(ctx, query, userID).
		Scan(&b.UserID, &b.Total, &b.Available, &b.Pending, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("getting balance: %w", err)
	}

	return &b, nil
}

func (s *Store) LockBalance(ctx context.Context, userID int64) (*wallet.Balance, bool, error) {
	conn := database.Conn(ctx, s.db)

	insert := `
		INSERT INTO wallet_balances (user_id, total, available, pending, updated_at)
		VALUES ($1, 0, 0, 0, NOW())
		ON CONFLICT (user_id) DO NOTHING
	`

	res, err := conn.ExecContext(ctx, insert, userID)
	if err != nil {
		return nil, false, fmt.Errorf("seeding balance: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("seeding balance: %w", err)
	}

	query := `
		SELECT user_id, total, available, pending, updated_at
		FROM wallet_balances
		WHERE user_id = $1
		FOR UPDATE
	`

	var b wallet.Balance

	err = conn.QueryRowContext(ctx, query, userID).
		Scan(&b.UserID, &b.Total, &b.Available, &b.Pending, &b.UpdatedAt)
	if err != nil {
		return nil, false, fmt.Errorf("locking balance: %w", err)
	}

	return &b, n == 1, nil
}

func (s *Store) SaveBalance(ctx context.Context, b *wallet.Balance) error {
	query := `
		UPDATE wallet_balances
		SET total = $1, available = $2, pending = $3, updated_at = NOW()
		WHERE user_id = $4
		RETURNING updated_at
	`

	err := database.Conn(ctx, s.db).QueryRowContext(ctx, query, b.Total, b.Available, b.Pending, b.UserID).
		Scan(&b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving balance: %w", err)
	}

	return nil
}

const selectWithdrawalColumns = `id, user_id, amount, status, notes, processed_at, processed_by, created_at, updated_at`

func scanWithdrawal(s scanner) (*wallet.Withdrawal, error) {
	var w wallet.Withdrawal

	var status string

	var processedBy sql.NullInt64

	if err := s.Scan(
		&w.ID, &w.UserID, &w.Amount, &status, &w.Notes, &w.ProcessedAt, &processedBy, &w.CreatedAt, &w.UpdatedAt,
	); err != nil {
		return nil, err
	}

	w.Status = wallet.WithdrawalStatus(status)

	if processedBy.Valid {
		w.ProcessedBy = &processedBy.Int64
	}

	return &w, nil
}

func (s *Store) CreateWithdrawal(ctx context.Context, w *wallet.Withdrawal) error {
	query := `
		INSERT INTO withdrawals (user_id, amount, status, notes, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err := database.Conn(ctx, s.db).QueryRowContext(ctx, query, w.UserID, w.Amount, w.Status, w.Notes).
		Scan(&w.ID, &w.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating withdrawal: %w", err)
	}

	return nil
}

func (s *Store) LockWithdrawal(ctx context.Context, id int64) (*wallet.Withdrawal, error) {
	query := `SELECT ` + selectWithdrawalColumns + ` FROM withdrawals WHERE id = $1 FOR UPDATE`

	w, err := scanWithdrawal(database.Conn(ctx, s.db).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, wallet.ErrWithdrawalNotFound
		}

		return nil, fmt.Errorf("locking withdrawal: %w", err)
	}

	return w, nil
}

func (s *Store) UpdateWithdrawal(ctx context.Context, w *wallet.Withdrawal) error {
	query := `
		UPDATE withdrawals
		SET status = $1, notes = $2, processed_at = $3, processed_by = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	err := database.Conn(ctx, s.db).QueryRowContext(ctx, query,
		w.Status,
		w.Notes,
		w.ProcessedAt,
		w.ProcessedBy,
		w.ID,
	).Scan(&w.UpdatedAt)
	if err != nil {
		return fmt.Errorf("updating withdrawal: %w", err)
	}

	return nil
}

func (s *Store) ListWithdrawals(ctx context.Context, filter wallet.WithdrawalFilter) ([]*wallet.Withdrawal, error) {
	query := `SELECT ` + selectWithdrawalColumns + ` FROM withdrawals WHERE 1 = 1`

	var args []any

	argIdx := 1

	if filter.UserID != nil {
		query += fmt.Sprintf(" AND user_id = $%d", argIdx)

		args = append(args, *filter.UserID)
		argIdx++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)

		args = append(args, *filter.Status)
	}

	query += " ORDER BY created_at DESC"

	rows, err := database.Conn(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing withdrawals: %w", err)
	}
	defer rows.Close()

	withdrawals := []*wallet.Withdrawal{}

	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning withdrawal: %w", err)
		}

		withdrawals = append(withdrawals, w)
	}

	return withdrawals, rows.Err()
}

const selectEnrollmentColumns = `
	id, user_id, holder_name, document, pix_key, pix_key_type, bank_name, status, notes,
	processed_at, processed_by, created_at, updated_at
`

func scanEnrollment(s scanner) (*wallet.Enrollment, error) {
	var e wallet.Enrollment

	var status string

	var processedBy sql.NullInt64

	if err := s.Scan(
		&e.ID, &e.UserID, &e.HolderName, &e.Document, &e.PixKey, &e.PixKeyType, &e.BankName, &status, &e.Notes,
		&e.ProcessedAt, &processedBy, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}

	e.Status = wallet.EnrollmentStatus(status)

	if processedBy.Valid {
		e.ProcessedBy = &processedBy.Int64
	}

	return &e, nil
}

// CreateEnrollment reports ErrEnrollmentPending when the partial unique index
// on pending requests rejects the insert.
func (s *Store) CreateEnrollment(ctx context.Context, e *wallet.Enrollment) error {
	query := `
		INSERT INTO wallet_enrollments (user_id, holder_name, document, pix_key, pix_key_type, bank_name, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`

	err := database.Conn(ctx, s.db).QueryRowContext(ctx, query,
		e.UserID,
		e.HolderName,
		e.Document,
		e.PixKey,
		e.PixKeyType,
		e.BankName,
		e.Status,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return wallet.ErrEnrollmentPending
		}

		return fmt.Errorf("creating enrollment: %w", err)
	}

	return nil
}

func (s *Store) LockEnrollment(ctx context.Context, id int64) (*wallet.Enrollment, error) {
	query := `SELECT ` + selectEnrollmentColumns + ` FROM wallet_enrollments WHERE id = $1 FOR UPDATE`

	e, err := scanEnrollment(database.Conn(ctx, s.db).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, wallet.ErrEnrollmentNotFound
		}

		return nil, fmt.Errorf("locking enrollment: %w", err)
	}

	return e, nil
}

func (s *Store) UpdateEnrollment(ctx context.Context, e *wallet.Enrollment) error {
	query := `
		UPDATE wallet_enrollments
		SET status = $1, notes = $2, processed_at = $3, processed_by = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	err := database.Conn(ctx, s.db).QueryRowContext(ctx, query,
		e.Status,
		e.Notes,
		e.ProcessedAt,
		e.ProcessedBy,
		e.ID,
	).Scan(&e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("updating enrollment: %w", err)
	}

	return nil
}

func (s *Store) ListEnrollments(ctx context.Context, filter wallet.EnrollmentFilter) ([]*wallet.Enrollment, error) {
	query := `SELECT ` + selectEnrollmentColumns + ` FROM wallet_enrollments`

	var args []any

	if filter.Status != nil {
		query += " WHERE status = $1"

		args = append(args, *filter.Status)
	}

	query += " ORDER BY created_at ASC"

	rows, err := database.Conn(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing enrollments: %w", err)
	}
	defer rows.Close()

	enrollments := []*wallet.Enrollment{}

	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning enrollment: %w", err)
		}

		enrollments = append(enrollments, e)
	}

	return enrollments, rows.Err()
}
