package postgres

import (
	"context"
	"customer-directory/internal/domain/customer"
	"customer-directory/internal/pkg/apperrors"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pashagolub/pgxmock/v3"
)

type DBPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Close()
}

var _ DBPool = (*pgxpool.Pool)(nil)

var _ DBPool = (pgxmock.PgxPoolIface)(nil)

const (
	createTableSQL = `
        CREATE TABLE IF NOT EXISTS customers (
            position      INTEGER PRIMARY KEY,
            first_name    TEXT NOT NULL,
            last_name     TEXT NOT NULL,
            email         TEXT NOT NULL,
            business_name TEXT NOT NULL DEFAULT ''
        )`

	selectCustomersSQL = `SELECT first_name, last_name, email, business_name FROM customers ORDER BY position`

	deleteCustomersSQL = `DELETE FROM customers`

	insertCustomerSQL = `
        INSERT INTO customers (position, first_name, last_name, email, business_name)
        VALUES ($1, $2, $3, $4, $5)`
)

// CustomerStore keeps the collection in a table, one row per customer, with
// position recording the collection order.
type CustomerStore struct {
	db     DBPool
	logger *slog.Logger
}

var _ customer.Store = (*CustomerStore)(nil)

func NewCustomerStore(db DBPool, logger *slog.Logger) *CustomerStore {
	if db == nil {
		panic("DBPool cannot be nil for CustomerStore")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerStore, using default stderr handler")
	}
	return &CustomerStore{
		db:     db,
		logger: logger.With("component", "PostgresCustomerStore"),
	}
}

func (r *CustomerStore) EnsureSchema(ctx context.Context) error {
	r.logger.InfoContext(ctx, "Ensuring customers table exists")
	if _, err := r.db.Exec(ctx, createTableSQL); err != nil {
		r.logger.ErrorContext(ctx, "Failed to create customers table", slog.Any("error", err))
		return fmt.Errorf("failed to create customers table: %w", err)
	}
	return nil
}

func (r *CustomerStore) Load(ctx context.Context) (customer.Collection, error) {
	logCtx := r.logger.With(slog.String("operation", "Load"))
	logCtx.DebugContext(ctx, "Loading customers")

	rows, err := r.db.Query(ctx, selectCustomersSQL)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to query customers", slog.Any("error", err))
		return nil, apperrors.WrapStoreReadError(err, "failed to query customers")
	}
	defer rows.Close()

	customers := make(customer.Collection, 0)
	for rows.Next() {
		var c customer.Customer
		if err := rows.Scan(&c.FirstName, &c.LastName, &c.Email, &c.BusinessName); err != nil {
			logCtx.ErrorContext(ctx, "Failed to scan customer row", slog.Any("error", err))
			return nil, apperrors.WrapStoreReadError(err, "failed scanning customer row")
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		logCtx.ErrorContext(ctx, "Error iterating customer rows", slog.Any("error", err))
		return nil, apperrors.WrapStoreReadError(err, "error iterating customer rows")
	}

	logCtx.DebugContext(ctx, "Finished loading customers", slog.Int("count", len(customers)))
	return customers, nil
}

// Save replaces every row inside one transaction.
func (r *CustomerStore) Save(ctx context.Context, customers customer.Collection) (err error) {
	logCtx := r.logger.With(slog.String("operation", "Save"), slog.Int("count", len(customers)))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to begin transaction", slog.Any("error", err))
		return apperrors.WrapStoreWriteError(err, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				logCtx.ErrorContext(ctx, "Failed to rollback transaction", slog.Any("error", rbErr))
			}
		}
	}()

	if _, err = tx.Exec(ctx, deleteCustomersSQL); err != nil {
		logCtx.ErrorContext(ctx, "Failed to clear customers", slog.Any("error", err))
		return apperrors.WrapStoreWriteError(err, "failed to clear customers")
	}

	for i, c := range customers {
		if _, err = tx.Exec(ctx, insertCustomerSQL, i, c.FirstName, c.LastName, c.Email, c.BusinessName); err != nil {
			logCtx.ErrorContext(ctx, "Failed to insert customer", slog.Int("position", i), slog.Any("error", err))
			return apperrors.WrapStoreWriteError(err, "failed to insert customer")
		}
	}

	if err = tx.Commit(ctx); err != nil {
		logCtx.ErrorContext(ctx, "Failed to commit transaction", slog.Any("error", err))
		return apperrors.WrapStoreWriteError(err, "failed to commit customers")
	}

	logCtx.DebugContext(ctx, "Customers saved")
	return nil
}
