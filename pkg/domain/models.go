package domain

// DatabaseType identifies the kind of backing store the marketplace uses.
type DatabaseType string

const (
	// DatabaseTypePostgreSQL is the declared store, served by the lib/pq driver.
	DatabaseTypePostgreSQL DatabaseType = "postgresql"

	// DatabaseTypeMySQL is accepted by the schema but has no driver wired here.
	DatabaseTypeMySQL DatabaseType = "mysql"

	// DatabaseTypeSQLite is accepted by the schema but has no driver wired here.
	DatabaseTypeSQLite DatabaseType = "sqlite"

	// DatabaseTypeMongoDB is accepted by the schema but has no driver wired here.
	DatabaseTypeMongoDB DatabaseType = "mongodb"
)

// IsValid returns true if the database type is a known store kind.
func (t DatabaseType) IsValid() bool {
	switch t {
	case DatabaseTypePostgreSQL, DatabaseTypeMySQL, DatabaseTypeSQLite, DatabaseTypeMongoDB:
		return true
	default:
		return false
	}
}

// IsSQL returns true for relational stores.
func (t DatabaseType) IsSQL() bool {
	switch t {
	case DatabaseTypePostgreSQL, DatabaseTypeMySQL, DatabaseTypeSQLite:
		return true
	default:
		return false
	}
}

// DriverName returns the database/sql driver name for the store kind,
// or an empty string when no driver is registered for it.
func (t DatabaseType) DriverName() string {
	if t == DatabaseTypePostgreSQL {
		return "postgres"
	}
	return ""
}

// Common upload media types.
const (
	MediaTypeJPEG = "image/jpeg"
	MediaTypePNG  = "image/png"
	MediaTypeWebP = "image/webp"
)
