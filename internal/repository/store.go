package repository

import (
	"context"
	"database/sql"
	"time"

	"inventory-management/internal/database"
	"inventory-management/internal/domain"
	"inventory-management/internal/metrics"
	apperrors "inventory-management/pkg/errors"

	"go.uber.org/zap"
)

// sqlStore holds what every table store needs: the connection provider,
// a logger and the metrics sink.
type sqlStore struct {
	db      *database.DB
	logger  *zap.Logger
	metrics *metrics.Metrics
	entity  string
}

type rowScanner interface {
	Scan(dest ...any) error
}

// withConn runs fn on a connection acquired for this call only. The
// connection goes back to the pool on every exit path.
func (s *sqlStore) withConn(ctx context.Context, operation string, fn func(conn *sql.Conn) error) (err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveStore(s.entity, operation, start, err) }()

	conn, err := s.db.Acquire(ctx)
	if err != nil {
		return err
	}
	defer s.db.Release(conn)

	return fn(conn)
}

// exec runs a write statement and returns the number of affected rows.
func (s *sqlStore) exec(ctx context.Context, conn *sql.Conn, query string, args ...any) (int64, error) {
	result, err := conn.ExecContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (s *sqlStore) count(ctx context.Context, conn *sql.Conn, q *activeQuery) (int64, error) {
	query, args := q.Build()
	var n int64
	if err := conn.QueryRowContext(ctx, s.db.Rebind(query), args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// queryList runs q and scans every row with scan.
func queryList[T any](ctx context.Context, s *sqlStore, conn *sql.Conn, q *activeQuery, scan func(rowScanner) (T, error)) ([]T, error) {
	query, args := q.Build()
	rows, err := conn.QueryContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// queryOne runs q and scans the first row; a missing row yields an empty Optional.
func queryOne[T any](ctx context.Context, s *sqlStore, conn *sql.Conn, q *activeQuery, scan func(rowScanner) (T, error)) (domain.Optional[T], error) {
	items, err := queryList(ctx, s, conn, q.Limit(1), scan)
	if err != nil || len(items) == 0 {
		return domain.None[T](), err
	}
	return domain.Some(items[0]), nil
}

// persistenceError wraps err unless it already is a StandardError.
func persistenceError(message string, err error) error {
	if _, ok := apperrors.As(err); ok {
		return err
	}
	return apperrors.NewPersistenceError(message, err)
}

// now is the timestamp written on insert and update. Second precision keeps
// values identical across drivers.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
