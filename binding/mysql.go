package binding

import (
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"runtime"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/hhkbp2/mapbench"
)

const (
	PropertyMysqlHost            = "mysql.host"
	PropertyMysqlHostDefault     = "127.0.0.1"
	PropertyMysqlPort            = "mysql.port"
	PropertyMysqlPortDefault     = "3306"
	PropertyMysqlDatabase        = "mysql.db"
	PropertyMysqlDatabaseDefault = "db"
	PropertyMysqlUser            = "mysql.user"
	PropertyMysqlUserDefault     = "user"
	PropertyMysqlPassword        = "mysql.password"
	PropertyMysqlPasswordDefault = "password"
	PropertyMysqlOptions         = "mysql.options"
	PropertyMysqlOptionsDefault  = "charset=utf8"
	PropertyMysqlDSN             = "mysql.dsn"
)

// MysqlMap keeps its keys in a table created for the collection and dropped
// when the collection closes.
type MysqlMap struct {
	db         *sql.DB
	table      string
	getStmt    *sql.Stmt
	insertStmt *sql.Stmt
	removeStmt *sql.Stmt
	updateStmt *sql.Stmt
}

// MysqlDSNFromProperties returns `PropertyMysqlDSN` if set, or formats one
// from the host, port, database, user, password and options properties.
func MysqlDSNFromProperties(p mapbench.Properties) (string, error) {
	if dsn := p.Get(PropertyMysqlDSN); len(dsn) > 0 {
		return dsn, nil
	}
	port, err := p.GetInt64(PropertyMysqlPort, PropertyMysqlPortDefault)
	if err != nil {
		return "", err
	}
	options, err := url.ParseQuery(p.GetDefault(PropertyMysqlOptions, PropertyMysqlOptionsDefault))
	if err != nil {
		return "", fmt.Errorf("invalid property %s: %w", PropertyMysqlOptions, err)
	}
	config := mysql.NewConfig()
	config.Net = "tcp"
	config.Addr = net.JoinHostPort(p.GetDefault(PropertyMysqlHost, PropertyMysqlHostDefault), fmt.Sprint(port))
	config.DBName = p.GetDefault(PropertyMysqlDatabase, PropertyMysqlDatabaseDefault)
	config.User = p.GetDefault(PropertyMysqlUser, PropertyMysqlUserDefault)
	config.Passwd = p.GetDefault(PropertyMysqlPassword, PropertyMysqlPasswordDefault)
	config.Params = make(map[string]string, len(options))
	for k := range options {
		config.Params[k] = options.Get(k)
	}
	return config.FormatDSN(), nil
}

// NewMysqlMap connects to dsn and creates the table of the collection.
func NewMysqlMap(dsn string) (*MysqlMap, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: mysql: %s", mapbench.ErrBackendUnavailable, err)
	}
	db.SetMaxIdleConns(runtime.GOMAXPROCS(0))
	table := "mapbench_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	_, err = db.Exec(fmt.Sprintf(
		"CREATE TABLE %s (k BIGINT UNSIGNED PRIMARY KEY, v INT UNSIGNED NOT NULL DEFAULT 0)", table))
	if err != nil {
		db.Close()
		return nil, err
	}
	object := &MysqlMap{
		db:    db,
		table: table,
	}
	statements := []struct {
		stmt  **sql.Stmt
		query string
	}{
		{&object.getStmt, "SELECT 1 FROM %s WHERE k = ?"},
		{&object.insertStmt, "INSERT IGNORE INTO %s (k) VALUES (?)"},
		{&object.removeStmt, "DELETE FROM %s WHERE k = ?"},
		{&object.updateStmt, "UPDATE %s SET v = v + 1 WHERE k = ?"},
	}
	for _, s := range statements {
		*s.stmt, err = db.Prepare(fmt.Sprintf(s.query, table))
		if err != nil {
			object.Close()
			return nil, err
		}
	}
	return object, nil
}

func (self *MysqlMap) Pin() mapbench.Handle {
	return self
}

// Close drops the table of the collection and disconnects.
func (self *MysqlMap) Close() error {
	for _, stmt := range []*sql.Stmt{self.getStmt, self.insertStmt, self.removeStmt, self.updateStmt} {
		if stmt != nil {
			stmt.Close()
		}
	}
	_, err := self.db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", self.table))
	if closeErr := self.db.Close(); err == nil {
		err = closeErr
	}
	return err
}

func (self *MysqlMap) exec(stmt *sql.Stmt, key uint64) bool {
	result, err := stmt.Exec(key)
	if err != nil {
		panic(fmt.Sprintf("mysql exec on %s: %s", self.table, err))
	}
	n, err := result.RowsAffected()
	if err != nil {
		panic(fmt.Sprintf("mysql rows affected on %s: %s", self.table, err))
	}
	return n == 1
}

func (self *MysqlMap) Get(key uint64) bool {
	var one int
	err := self.getStmt.QueryRow(key).Scan(&one)
	if err == sql.ErrNoRows {
		return false
	}
	if err != nil {
		panic(fmt.Sprintf("mysql select on %s: %s", self.table, err))
	}
	return true
}

func (self *MysqlMap) Insert(key uint64) bool {
	return self.exec(self.insertStmt, key)
}

func (self *MysqlMap) Remove(key uint64) bool {
	return self.exec(self.removeStmt, key)
}

func (self *MysqlMap) Update(key uint64) bool {
	return self.exec(self.updateStmt, key)
}
