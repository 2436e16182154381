package constants

const (
	DatabaseTypeMySQL      = "mysql"
	DatabaseTypePostgreSQL = "postgresql"
)

// SupportedDatabaseTypes is the order backends are offered in the UI.
var SupportedDatabaseTypes = []string{
	DatabaseTypeMySQL,
	DatabaseTypePostgreSQL,
}

// GetDatabaseDisplayName returns the name shown to users for a backend
func GetDatabaseDisplayName(dbType string) string {
	switch dbType {
	case DatabaseTypeMySQL:
		return "MySQL"
	case DatabaseTypePostgreSQL:
		return "PostgreSQL"
	default:
		return dbType
	}
}

func IsSupportedDatabaseType(dbType string) bool {
	for _, t := range SupportedDatabaseTypes {
		if t == dbType {
			return true
		}
	}
	return false
}
