// Package recording stores structured rows, one table per Go struct type, in
// a SQLite database. It is the storage backend used when collected
// performance payloads should survive the process.
package recording

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/fatih/structs"

	// SQLite driver.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// Recorder is a backend that can record and store rows.
type Recorder interface {
	// CreateTable creates a table whose columns mirror the exported fields
	// of sampleEntry.
	CreateTable(tableName string, sampleEntry any)

	// InsertData buffers one entry for a table that already exists. Entries
	// are written in batches; call Flush to force them out.
	InsertData(tableName string, entry any)

	// ListTables returns the names of all created tables.
	ListTables() []string

	// Flush writes all buffered entries into the database.
	Flush()

	// Close flushes and releases the database connection.
	Close() error
}

// NewRecorder creates a Recorder backed by a SQLite file at path+".sqlite3".
// With an empty path a unique name is generated. Buffered entries are flushed
// when the process exits through atexit.
func NewRecorder(path string) Recorder {
	w := &sqliteRecorder{
		dbName:    path,
		batchSize: 100000,
		tables:    make(map[string]*tableBuffer),
	}

	w.connect()

	atexit.Register(func() { w.Flush() })

	return w
}

// NewRecorderWithDB creates a Recorder on an already-open database.
func NewRecorderWithDB(db *sql.DB) Recorder {
	w := &sqliteRecorder{
		db:        db,
		batchSize: 100000,
		tables:    make(map[string]*tableBuffer),
	}

	atexit.Register(func() { w.Flush() })

	return w
}

type tableBuffer struct {
	structType reflect.Type
	entries    []any
}

type sqliteRecorder struct {
	db *sql.DB

	dbName     string
	tables     map[string]*tableBuffer
	tableOrder []string
	batchSize  int
	entryCount int
}

func (r *sqliteRecorder) connect() {
	if r.dbName == "" {
		r.dbName = "perftrack_recording_" + xid.New().String()
	}

	filename := r.dbName + ".sqlite3"

	_, err := os.Stat(filename)
	if err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	fmt.Fprintf(os.Stderr, "Database created for recording: %s\n", filename)

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}

	r.db = db
}

func (r *sqliteRecorder) CreateTable(tableName string, sampleEntry any) {
	if err := entryFieldsMustBeScalar(sampleEntry); err != nil {
		panic(err)
	}

	fields := strings.Join(structs.Names(sampleEntry), ", \n\t")
	createTableSQL := `CREATE TABLE ` + tableName +
		` (` + "\n\t" + fields + "\n" + `);`
	r.mustExecute(createTableSQL)

	r.tables[tableName] = &tableBuffer{
		structType: reflect.TypeOf(sampleEntry),
	}
	r.tableOrder = append(r.tableOrder, tableName)
}

func (r *sqliteRecorder) InsertData(tableName string, entry any) {
	buffer, exists := r.tables[tableName]
	if !exists {
		panic(fmt.Sprintf("table %s does not exist", tableName))
	}

	buffer.entries = append(buffer.entries, entry)

	r.entryCount++
	if r.entryCount >= r.batchSize {
		r.Flush()
	}
}

func (r *sqliteRecorder) ListTables() []string {
	tables := make([]string, len(r.tableOrder))
	copy(tables, r.tableOrder)

	return tables
}

func (r *sqliteRecorder) Flush() {
	if r.entryCount == 0 {
		return
	}

	r.mustExecute("BEGIN TRANSACTION")
	defer r.mustExecute("COMMIT TRANSACTION")

	for _, tableName := range r.tableOrder {
		buffer := r.tables[tableName]
		if len(buffer.entries) == 0 {
			continue
		}

		stmt := r.prepareInsert(tableName, buffer.entries[0])

		for _, entry := range buffer.entries {
			values := fieldValues(entry)
			if _, err := stmt.Exec(values...); err != nil {
				panic(err)
			}
		}

		buffer.entries = nil

		stmt.Close()
	}

	r.entryCount = 0
}

func (r *sqliteRecorder) Close() error {
	r.Flush()
	return r.db.Close()
}

func (r *sqliteRecorder) mustExecute(query string) sql.Result {
	res, err := r.db.Exec(query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to execute: %s\n", query)
		panic(err)
	}

	return res
}

func (r *sqliteRecorder) prepareInsert(tableName string, entry any) *sql.Stmt {
	placeholders := structs.Names(entry)
	for i := range placeholders {
		placeholders[i] = "?"
	}

	sqlStr := "INSERT INTO " + tableName +
		" VALUES (" + strings.Join(placeholders, ", ") + ")"

	stmt, err := r.db.Prepare(sqlStr)
	if err != nil {
		panic(err)
	}

	return stmt
}

func fieldValues(entry any) []any {
	value := reflect.ValueOf(entry)
	values := make([]any, 0, value.NumField())

	for i := 0; i < value.NumField(); i++ {
		values = append(values, value.Field(i).Interface())
	}

	return values
}

func entryFieldsMustBeScalar(entry any) error {
	entryType := reflect.TypeOf(entry)

	for i := 0; i < entryType.NumField(); i++ {
		if !isScalarKind(entryType.Field(i).Type.Kind()) {
			return errors.New("entry field " + entryType.Field(i).Name +
				" is not a scalar type")
		}
	}

	return nil
}

func isScalarKind(kind reflect.Kind) bool {
	switch kind {
	case
		reflect.Bool,
		reflect.Int,
		reflect.Int8,
		reflect.Int16,
		reflect.Int32,
		reflect.Int64,
		reflect.Uint,
		reflect.Uint8,
		reflect.Uint16,
		reflect.Uint32,
		reflect.Uint64,
		reflect.Float32,
		reflect.Float64,
		reflect.String:
		return true
	default:
		return false
	}
}
