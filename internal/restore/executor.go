package restore

import "database/sql"

// Executor is the engine capability the restorer needs: run one statement,
// report affected rows or a failure. Tests substitute an in-memory fake.
type Executor interface {
	Execute(stmt string) (int64, error)
}

// DBExecutor executes statements over a database/sql connection.
type DBExecutor struct {
	db *sql.DB
}

func NewDBExecutor(db *sql.DB) *DBExecutor {
	return &DBExecutor{db: db}
}

func (e *DBExecutor) Execute(stmt string) (int64, error) {
	res, err := e.db.Exec(stmt)
	if err != nil {
		return 0, err
	}
	// Some drivers cannot report affected rows for DDL; treat that as zero.
	n, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return n, nil
}
