package recording

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
)

// QueryParams encapsulates the optional parts of a table query.
type QueryParams struct {
	// Where holds the WHERE clause without the "WHERE" keyword, e.g.
	// "CollectedAt > ? AND Label = ?".
	Where string

	// Args holds the arguments for the placeholders in Where.
	Args []any

	// Limit is the maximum number of records to return. 0 means no limit.
	Limit int

	// Offset is the number of records to skip.
	Offset int

	// OrderBy specifies sorting, without the "ORDER BY" keywords.
	OrderBy string
}

// Reader reads rows recorded by a Recorder back into struct instances.
type Reader interface {
	// MapTable establishes a mapping from a table to a Go struct type. The
	// mapping is required before querying the table.
	MapTable(tableName string, sampleEntry any)

	// ListTables returns all mapped tables.
	ListTables() []string

	// Query runs a query on a table. Each result is a pointer to a struct
	// of the mapped type. totalCount is the number of matching rows before
	// Limit/Offset are applied.
	Query(ctx context.Context, tableName string, params QueryParams) (
		results []any,
		totalCount int,
		err error,
	)

	// Close closes the reader.
	Close() error
}

// NewReader opens a Reader on a SQLite database file.
func NewReader(dbFilename string) Reader {
	db, err := sql.Open("sqlite3", dbFilename)
	if err != nil {
		panic(err)
	}

	return &sqliteReader{
		db:      db,
		typeMap: make(map[string]reflect.Type),
	}
}

// NewReaderWithDB creates a Reader on an already-open database.
func NewReaderWithDB(db *sql.DB) Reader {
	return &sqliteReader{
		db:      db,
		typeMap: make(map[string]reflect.Type),
	}
}

type sqliteReader struct {
	db *sql.DB

	typeMap map[string]reflect.Type
}

func (r *sqliteReader) MapTable(tableName string, sampleEntry any) {
	r.typeMap[tableName] = reflect.TypeOf(sampleEntry)
}

func (r *sqliteReader) ListTables() []string {
	tables := make([]string, 0, len(r.typeMap))
	for table := range r.typeMap {
		tables = append(tables, table)
	}

	return tables
}

func (r *sqliteReader) Query(
	ctx context.Context,
	tableName string,
	params QueryParams,
) ([]any, int, error) {
	structType, ok := r.typeMap[tableName]
	if !ok {
		return nil, 0, fmt.Errorf("no mapping found for table: %s", tableName)
	}

	query := fmt.Sprintf("SELECT * FROM %s", tableName)

	if params.Where != "" {
		query += " WHERE " + params.Where
	}

	if params.OrderBy != "" {
		query += " ORDER BY " + params.OrderBy
	}

	if params.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", params.Limit)
		if params.Offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", params.Offset)
		}
	}

	totalCount, err := r.queryTotalCount(ctx, tableName, params)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, query, params.Args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	results, err := scanRows(rows, structType)
	if err != nil {
		return nil, 0, err
	}

	return results, totalCount, nil
}

func (r *sqliteReader) queryTotalCount(
	ctx context.Context,
	tableName string,
	params QueryParams,
) (int, error) {
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", tableName)

	if params.Where != "" {
		countQuery += " WHERE " + params.Where
	}

	var totalCount int
	err := r.db.QueryRowContext(ctx, countQuery, params.Args...).
		Scan(&totalCount)
	if err != nil {
		return 0, err
	}

	return totalCount, nil
}

func (r *sqliteReader) Close() error {
	return r.db.Close()
}

func scanRows(rows *sql.Rows, structType reflect.Type) ([]any, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	fieldIndex := make(map[string]int)
	for i := 0; i < structType.NumField(); i++ {
		fieldIndex[structType.Field(i).Name] = i
	}

	var results []any

	for rows.Next() {
		structPtr := reflect.New(structType)
		structVal := structPtr.Elem()

		scanTargets := make([]any, len(columns))
		for i, colName := range columns {
			if fieldIdx, ok := fieldIndex[colName]; ok {
				scanTargets[i] = structVal.Field(fieldIdx).Addr().Interface()
			} else {
				var placeholder any
				scanTargets[i] = &placeholder
			}
		}

		if err := rows.Scan(scanTargets...); err != nil {
			return nil, err
		}

		results = append(results, structPtr.Interface())
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
