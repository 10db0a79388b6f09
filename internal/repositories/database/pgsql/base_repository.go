package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/loandesk_backend/internal/apperrors"
	"github.com/SscSPs/loandesk_backend/internal/middleware"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type txCtxKey struct{}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// db returns the transaction carried by ctx, or the pool when there is none.
func (r *BaseRepository) db(ctx context.Context) querier {
	if tx, ok := ctx.Value(txCtxKey{}).(pgx.Tx); ok {
		return tx
	}
	return r.Pool
}

// inTx reports whether ctx carries a transaction.
func inTx(ctx context.Context) bool {
	_, ok := ctx.Value(txCtxKey{}).(pgx.Tx)
	return ok
}

// RunInTx runs fn in a transaction. A transaction already in ctx is reused, so
// nested calls join the outer unit of work.
func (r *BaseRepository) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if inTx(ctx) {
		return fn(ctx)
	}

	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				middleware.GetLoggerFromCtx(ctx).Error("Failed to rollback transaction", slog.String("error", rbErr.Error()))
			}
		}
	}()

	if err = fn(context.WithValue(ctx, txCtxKey{}, tx)); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// lockClause returns FOR UPDATE inside a transaction so rows read there stay consistent until commit.
func lockClause(ctx context.Context) string {
	if inTx(ctx) {
		return " FOR UPDATE"
	}
	return ""
}

// defaultPageSize applies when a list call asks for no limit.
const defaultPageSize = 50

// page normalizes paging arguments: a non-positive limit means the default page, a negative offset means zero.
func page(limit int, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	return limit, max(offset, 0)
}

// mapWriteError converts constraint violations into application errors.
func mapWriteError(err error, what string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return apperrors.NewConflictError(what + " already exists")
		case "23503": // foreign_key_violation
			return apperrors.NewValidationFailedError(fmt.Sprintf("%s references a missing record (%s)", what, pgErr.ConstraintName))
		case "23514": // check_violation
			return apperrors.NewValidationFailedError(fmt.Sprintf("%s violates %s", what, pgErr.ConstraintName))
		}
	}
	return apperrors.NewAppError(500, "failed to write "+what, err)
}

// collect runs a select and maps every row by column name.
func collect[T any](ctx context.Context, q querier, what string, query string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query "+what, err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect "+what+" rows", err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// mapDeleteError reports rows still referenced elsewhere as a conflict.
func mapDeleteError(err error, what string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return apperrors.NewAppError(409, what+" is still referenced and cannot be deleted", apperrors.ErrConflict)
	}
	return apperrors.NewAppError(500, "failed to delete "+what, err)
}
