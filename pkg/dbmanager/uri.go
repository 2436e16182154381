package dbmanager

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
)

const (
	defaultMySQLPort = "3306"
)

// parseURI parses a database URI. SQLAlchemy style schemes carrying a driver
// suffix such as mysql+pymysql:// are accepted and the suffix is dropped.
func parseURI(uri string, schemes ...string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(uri))
	if err != nil {
		return nil, fmt.Errorf("invalid database URI: %v", err)
	}

	scheme := strings.ToLower(u.Scheme)
	if idx := strings.Index(scheme, "+"); idx >= 0 {
		scheme = scheme[:idx]
	}
	for _, s := range schemes {
		if scheme == s {
			u.Scheme = scheme
			return u, nil
		}
	}
	return nil, fmt.Errorf("invalid database URI scheme %q, expected one of %v", u.Scheme, schemes)
}

// MySQLDSN converts a mysql:// URI into a go-sql-driver DSN with parseTime
// enabled so DATE and DATETIME columns arrive as time.Time.
func MySQLDSN(uri string) (string, error) {
	u, err := parseURI(uri, "mysql", "mariadb")
	if err != nil {
		return "", err
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("invalid database URI: missing host")
	}

	cfg := mysqldriver.NewConfig()
	cfg.Net = "tcp"
	port := u.Port()
	if port == "" {
		port = defaultMySQLPort
	}
	cfg.Addr = net.JoinHostPort(u.Hostname(), port)
	if u.User != nil {
		cfg.User = u.User.Username()
		cfg.Passwd, _ = u.User.Password()
	}
	cfg.DBName = strings.TrimPrefix(u.Path, "/")
	cfg.ParseTime = true

	for key, values := range u.Query() {
		if len(values) == 0 {
			continue
		}
		value := values[0]
		switch strings.ToLower(key) {
		case "charset":
			if cfg.Params == nil {
				cfg.Params = map[string]string{}
			}
			cfg.Params["charset"] = value
		case "tls":
			cfg.TLSConfig = value
		case "ssl_mode", "ssl-mode", "sslmode":
			cfg.TLSConfig = mysqlTLSMode(value)
		case "connect_timeout", "timeout":
			if d, err := parseSeconds(value); err == nil {
				cfg.Timeout = d
			}
		case "read_timeout":
			if d, err := parseSeconds(value); err == nil {
				cfg.ReadTimeout = d
			}
		}
	}

	return cfg.FormatDSN(), nil
}

func mysqlTLSMode(mode string) string {
	switch strings.ToUpper(mode) {
	case "DISABLED", "DISABLE", "FALSE":
		return "false"
	case "PREFERRED":
		return "preferred"
	case "REQUIRED", "REQUIRE":
		return "skip-verify"
	default:
		return "true"
	}
}

func parseSeconds(value string) (time.Duration, error) {
	if d, err := time.ParseDuration(value); err == nil {
		return d, nil
	}
	return time.ParseDuration(value + "s")
}

// PostgresDSN normalizes a postgresql:// URI for lib/pq. sslmode defaults to
// disable when the URI does not set it.
func PostgresDSN(uri string) (string, error) {
	u, err := parseURI(uri, "postgresql", "postgres")
	if err != nil {
		return "", err
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("invalid database URI: missing host")
	}

	u.Scheme = "postgres"
	query := u.Query()
	if query.Get("sslmode") == "" {
		query.Set("sslmode", "disable")
	}
	u.RawQuery = query.Encode()
	return u.String(), nil
}
