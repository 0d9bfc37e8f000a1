package db

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"

	DefaultSearchPathEnv = "PATH"
)

var ErrUnsupportedDriver = errors.New("unsupported database driver")

// Config is captured verbatim by New and never changes afterwards.
type Config struct {
	// Driver is the database/sql driver name: "sqlite" (default) or "pgx".
	// "postgres" is accepted as an alias of "pgx".
	Driver   string
	Username string
	Password string
	// Address is host:port/service-name for network drivers and the database
	// file for sqlite.
	Address string
	// DriverLocation is prepended to SearchPathEnv before every connection
	// attempt, for drivers that load native client libraries.
	DriverLocation string
	SearchPathEnv  string

	// Debug enables the daily error-log file in LogDir.
	Debug  bool
	LogDir string
}

// DriverName resolves aliases and the default driver.
func (c Config) DriverName() string {
	switch strings.ToLower(c.Driver) {
	case "", DriverSQLite, "sqlite3":
		return DriverSQLite
	case DriverPostgres, "postgres", "postgresql":
		return DriverPostgres
	default:
		return c.Driver
	}
}

// DSN builds the data source name handed to sql.Open.
func (c Config) DSN() (string, error) {
	switch c.DriverName() {
	case DriverSQLite:
		if c.Address == "" {
			return "", errors.New("sqlite: address (database file) is required")
		}
		return c.Address, nil
	case DriverPostgres:
		return postgresDSN(c.Username, c.Password, c.Address)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDriver, c.Driver)
	}
}

// postgresDSN turns "host:port/service?opts" into a postgres:// URL.
func postgresDSN(username, password, address string) (string, error) {
	if address == "" {
		return "", errors.New("pgx: address is required")
	}

	hostPart, rest, _ := strings.Cut(address, "/")
	service, rawQuery, _ := strings.Cut(rest, "?")
	if hostPart == "" {
		return "", fmt.Errorf("pgx: address %q has no host", address)
	}

	u := url.URL{
		Scheme:   "postgres",
		Host:     hostPart,
		RawQuery: rawQuery,
	}
	if service != "" {
		u.Path = "/" + service
	}
	switch {
	case username != "" && password != "":
		u.User = url.UserPassword(username, password)
	case username != "":
		u.User = url.User(username)
	}
	return u.String(), nil
}
