package pgx

import (
	"context"
	"errors"

	pgxv5 "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	pgdb "github.com/kiruna-explorer/backend/pkg/db/pgx"
	"github.com/kiruna-explorer/backend/pkg/common"
	"github.com/kiruna-explorer/backend/pkg/store"
)

var _ store.CatalogStorage = (*CatalogDBStorage)(nil)

type pgxIConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, optionsAndArgs ...any) (pgxv5.Rows, error)
	QueryRow(ctx context.Context, sql string, optionsAndArgs ...any) pgxv5.Row
	Begin(ctx context.Context) (pgxv5.Tx, error)
}

// CatalogDBStorage implements store.CatalogStorage on PostgreSQL. Relations and
// resources reference documents with ON DELETE CASCADE, so removing a document
// removes everything hanging off it in the same statement.
type CatalogDBStorage struct {
	conn pgxIConn
}

// NewCatalogDBStorageWithConnection wraps an open pool or connection.
func NewCatalogDBStorageWithConnection(conn pgxIConn) *CatalogDBStorage {
	return &CatalogDBStorage{conn: conn}
}

func (s *CatalogDBStorage) queries() *pgdb.Queries {
	return pgdb.New(s.conn)
}

func (s *CatalogDBStorage) withTx(ctx context.Context, fn func(q *pgdb.Queries) error) error {
	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(pgdb.New(s.conn).WithTx(tx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
)

// translate maps constraint violations onto domain errors and wraps everything
// else as an internal error.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return common.ErrInvalidReference
		case pgUniqueViolation:
			if pgErr.TableName == "relations" {
				return common.ErrDuplicateRelation
			}
		case pgCheckViolation:
			if pgErr.ConstraintName == "relations_no_self_link" {
				return common.ErrSelfLink
			}
			return common.ValidationError{Field: pgErr.ColumnName, Message: pgErr.Message}
		}
	}
	return common.Internal(op, err)
}
