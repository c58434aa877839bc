// Package driver picks a storage.Provider implementation for a configured database.
package driver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/habitual/internal/config"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/keyring"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/storage/postgres"
	"github.com/julianstephens/habitual/internal/storage/sqlite"
)

// ErrEmbeddedCredentials is returned when a password is passed on the command
// line or in the config file instead of through the keyring or environment.
var ErrEmbeddedCredentials = errors.New("PostgreSQL connection strings with embedded credentials are not allowed here; " +
	"store them with 'habitual keyring set', export " + constants.EnvDBConn + ", or use .pgpass")

// New returns the provider for db, which is a SQLite file path, a PostgreSQL
// URL, or "keyring" to read the connection string from the environment or
// the OS keyring.
func New(db string) (storage.Provider, error) {
	if db == constants.DBFromKeyring {
		connStr, source, err := keyring.ResolveConnectionString()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve database connection: %w", err)
		}
		logger.Debug("Using PostgreSQL connection string", "source", source)
		return postgres.New(connStr), nil
	}

	if strings.HasPrefix(db, "postgres://") || strings.HasPrefix(db, "postgresql://") {
		if _, err := postgres.ValidateConnString(db); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, ErrEmbeddedCredentials
			}
			return nil, err
		}
		return postgres.New(db), nil
	}

	path, err := config.ExpandPath(db)
	if err != nil {
		return nil, err
	}
	return sqlite.NewStore(path), nil
}
