package restore

import "fmt"

// Dialect abstracts the engine-specific pieces of a restore run: DSN
// building, database existence/creation, and table dropping. The statement
// stream itself is executed verbatim.
type Dialect interface {
	DriverName() string
	DSN(cfg Config, withDatabase bool) string
	DatabaseExistsQuery() string
	CreateDatabaseQuery(name string) string
	DropTableQuery(table string) string
}

// GetDialect maps a driver name to its dialect.
func GetDialect(driver string) (Dialect, error) {
	switch driver {
	case "", "mysql":
		return &MysqlDialect{}, nil
	case "postgres":
		return &PostgresDialect{}, nil
	default:
		return nil, fmt.Errorf("unsupported driver %q (use mysql or postgres)", driver)
	}
}

type MysqlDialect struct{}

func (d *MysqlDialect) DriverName() string { return "mysql" }

func (d *MysqlDialect) DSN(cfg Config, withDatabase bool) string {
	name := ""
	if withDatabase {
		name = cfg.Database
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4", cfg.User, cfg.Password, cfg.Host, cfg.Port, name)
}

func (d *MysqlDialect) DatabaseExistsQuery() string {
	return `SELECT SCHEMA_NAME FROM information_schema.SCHEMATA WHERE SCHEMA_NAME = ?`
}

func (d *MysqlDialect) CreateDatabaseQuery(name string) string {
	return fmt.Sprintf("CREATE DATABASE `%s` CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci", name)
}

func (d *MysqlDialect) DropTableQuery(table string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS `%s`", table)
}

type PostgresDialect struct{}

func (d *PostgresDialect) DriverName() string { return "postgres" }

func (d *PostgresDialect) DSN(cfg Config, withDatabase bool) string {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s sslmode=disable", cfg.Host, cfg.Port, cfg.User, cfg.Password)
	if withDatabase {
		dsn += " dbname=" + cfg.Database
	}
	return dsn
}

func (d *PostgresDialect) DatabaseExistsQuery() string {
	return `SELECT datname FROM pg_database WHERE datname = $1`
}

func (d *PostgresDialect) CreateDatabaseQuery(name string) string {
	return fmt.Sprintf(`CREATE DATABASE "%s" ENCODING 'UTF8'`, name)
}

func (d *PostgresDialect) DropTableQuery(table string) string {
	return fmt.Sprintf(`DROP TABLE IF EXISTS "%s"`, table)
}
