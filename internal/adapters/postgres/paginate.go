package postgres_adapter

import (
	"context"
	"fmt"

	"github.com/ianmeigh/property-direct-backend/internal/core/domain"
	"github.com/ianmeigh/property-direct-backend/internal/core/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// paginatedQuery runs countQuery and dataQuery in one read-only transaction.
// dataQuery receives dataArgs followed by LIMIT and OFFSET.
func paginatedQuery[T any](
	ctx context.Context,
	pool *pgxpool.Pool,
	repoLogger port.LoggerPort,
	countQuery string, countArgs []interface{},
	dataQuery string, dataArgs []interface{},
	page domain.Pagination,
	scan func(pgx.Row) (*T, error),
) (*domain.Page[T], error) {
	tx, err := pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		repoLogger.Error("Failed to begin transaction", err, nil)
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var totalCount int64
	if err := tx.QueryRow(ctx, countQuery, countArgs...).Scan(&totalCount); err != nil {
		repoLogger.Error("Failed to count rows", err, port.Fields{"query": countQuery})
		return nil, fmt.Errorf("failed to count rows: %w", err)
	}

	result := domain.EmptyPage[T](page)
	result.TotalCount = totalCount
	if totalCount == 0 {
		return result, nil
	}

	args := append(append([]interface{}(nil), dataArgs...), page.PerPage, page.Offset())
	rows, err := tx.Query(ctx, dataQuery, args...)
	if err != nil {
		repoLogger.Error("Failed to query rows", err, port.Fields{"query": dataQuery})
		return nil, fmt.Errorf("failed to query rows: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			repoLogger.Error("Failed to scan row", err, nil)
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		result.Items = append(result.Items, *item)
	}
	if err := rows.Err(); err != nil {
		repoLogger.Error("Error during rows iteration", err, nil)
		return nil, fmt.Errorf("error during rows iteration: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		repoLogger.Error("Failed to commit transaction", err, nil)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	repoLogger.Debug("Page loaded.", port.Fields{"total_count": totalCount, "found_on_page": len(result.Items)})
	return result, nil
}
