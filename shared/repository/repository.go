package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"heritage/infras/otel"
	"heritage/infras/postgres"
	"heritage/shared/constant"
	"heritage/shared/dto"
	"heritage/shared/logger"
	"maps"
	"slices"
	"strings"

	"github.com/jmoiron/sqlx"
)

var errRequiredFilter = errors.New("required filter")

// handle is satisfied by both *sqlx.DB and *sqlx.Tx.
type handle interface {
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
	PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
}

// Repository is a table gateway for T. Columns come from T's db tags; a GetJoinQuery
// method on T adds a join to every read.
type Repository[T any] struct {
	db      *postgres.Connection
	otel    otel.Otel
	entity  string
	table   string
	primary string
	layout  layout
}

func NewRepository[T any](entityName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	return Repository[T]{
		db:      dbConnection,
		otel:    otl,
		entity:  entityName,
		table:   tableName,
		primary: primaryColumn,
		layout:  layoutOf[T](tableName),
	}
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	return repo.insert(ctx, "Insert", repo.db.Write, model)
}

func (repo *Repository[T]) InsertTx(ctx context.Context, tx *sqlx.Tx, model T) error {
	return repo.insert(ctx, "InsertTx", tx, model)
}

func (repo *Repository[T]) insert(ctx context.Context, op string, h handle, model T) error {
	ctx, scope := repo.span(ctx, op)
	defer scope.End()

	cols := repo.layout.insert
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (:%s)", repo.table, strings.Join(cols, ", "), strings.Join(cols, ", :"))

	_, err := repo.exec(ctx, scope, h, "insert data", query, model)

	return err
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.span(ctx, "Exist")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return false, errRequiredFilter
	}

	var found bool

	err := repo.one(ctx, scope, repo.db.Read, "check exist data", fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s %s)", repo.table, where), args, &found)

	return found, err
}

// Get returns the zero value of T when no row matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	return repo.get(ctx, "Get", repo.db.Read, filter, columns)
}

// GetTx reads through the transaction so the row is part of its snapshot.
func (repo *Repository[T]) GetTx(ctx context.Context, tx *sqlx.Tx, filter dto.FilterGroup, columns ...string) (T, error) {
	return repo.get(ctx, "GetTx", tx, filter, columns)
}

func (repo *Repository[T]) get(ctx context.Context, op string, h handle, filter dto.FilterGroup, columns []string) (T, error) {
	ctx, scope := repo.span(ctx, op)
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	query := fmt.Sprintf("SELECT %s FROM %s %s %s", repo.layout.selectList(columns), repo.table, repo.layout.join, where)

	var model T

	err := repo.one(ctx, scope, h, "get data", query, args, &model)
	if errors.Is(err, sql.ErrNoRows) {
		return model, nil
	}

	return model, err
}

// GetAll pages with LIMIT/OFFSET when both page and limit are set, and with LIMIT alone
// when only limit is. Sorting is applied as given; callers restrict SortBy beforehand.
func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.span(ctx, "GetAll")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	clauses := []string{
		fmt.Sprintf("SELECT %s FROM %s %s %s", repo.layout.selectList(columns), repo.table, repo.layout.join, where),
	}

	if params.SortBy != "" && params.SortDir != "" {
		clauses = append(clauses, fmt.Sprintf("ORDER BY %s %s", params.SortBy, params.SortDir))
	}

	if params.Limit > 0 {
		args["limit"] = params.Limit
		clauses = append(clauses, "LIMIT :limit")

		if params.Page > 0 {
			args["offset"] = (params.Page - 1) * params.Limit
			clauses = append(clauses, "OFFSET :offset")
		}
	}

	query := strings.Join(clauses, " ")
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	stmt, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, repo.fail(scope, "prepare statement", err)
	}
	defer stmt.Close()

	var models []T
	if err = stmt.SelectContext(ctx, &models, args); err != nil {
		return nil, repo.fail(scope, "get all data", err)
	}

	return models, nil
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.span(ctx, "Count")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)

	var count int

	err := repo.one(ctx, scope, repo.db.Read, "count data",
		fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s %s %s", repo.table, repo.primary, repo.table, repo.layout.join, where), args, &count)

	return count, err
}

// Sum adds up an integer column over the matching rows.
func (repo *Repository[T]) Sum(ctx context.Context, column string, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.span(ctx, "Sum")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)

	var total int

	err := repo.one(ctx, scope, repo.db.Read, "sum data",
		fmt.Sprintf("SELECT COALESCE(SUM(%s.%s), 0) FROM %s %s %s", repo.table, column, repo.table, repo.layout.join, where), args, &total)

	return total, err
}

func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	ctx, scope := repo.span(ctx, "Delete")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return errRequiredFilter
	}

	_, err := repo.exec(ctx, scope, repo.db.Write, "delete data", fmt.Sprintf("DELETE FROM %s %s", repo.table, where), args)

	return err
}

// UpdateTxAffected sets the given columns on every row matching filter and reports how many
// rows it touched. Zero means the filter matched nothing, which version filters rely on.
func (repo *Repository[T]) UpdateTxAffected(ctx context.Context, tx *sqlx.Tx, fields map[string]any, filter dto.FilterGroup) (int64, error) {
	ctx, scope := repo.span(ctx, "UpdateTxAffected")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return 0, errRequiredFilter
	}

	assignments := make([]string, 0, len(fields))
	for _, col := range slices.Sorted(maps.Keys(fields)) {
		assignments = append(assignments, col+" = :"+col)
	}

	maps.Copy(args, fields)

	result, err := repo.exec(ctx, scope, tx, "update data",
		fmt.Sprintf("UPDATE %s SET %s %s", repo.table, strings.Join(assignments, ", "), where), args)
	if err != nil {
		return 0, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows (%s): %w", repo.entity, err)
	}

	return affected, nil
}

// BuildWhereClause renders filter as a WHERE clause. An empty filter yields "" and empty args.
func (repo *Repository[T]) BuildWhereClause(_ context.Context, filter dto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()
	if where == "" {
		return "", map[string]any{}
	}

	return " WHERE " + where + " ", args
}

func (repo *Repository[T]) span(ctx context.Context, op string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName,
		fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entity, op))
}

// one prepares query against h and scans a single row into dest. sql.ErrNoRows is
// returned unwrapped and is not logged.
func (repo *Repository[T]) one(ctx context.Context, scope otel.Scope, h handle, action, query string, args, dest any) error {
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	stmt, err := h.PrepareNamedContext(ctx, query)
	if err != nil {
		return repo.fail(scope, "prepare statement", err)
	}
	defer stmt.Close()

	err = stmt.GetContext(ctx, dest, args)
	if errors.Is(err, sql.ErrNoRows) {
		return sql.ErrNoRows
	}

	if err != nil {
		return repo.fail(scope, action, err)
	}

	return nil
}

func (repo *Repository[T]) exec(ctx context.Context, scope otel.Scope, h handle, action, query string, arg any) (sql.Result, error) {
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := h.NamedExecContext(ctx, query, arg)
	if err != nil {
		return nil, repo.fail(scope, action, err)
	}

	return result, nil
}

func (repo *Repository[T]) fail(scope otel.Scope, action string, err error) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s (%s): %w", action, repo.entity, err)
}
