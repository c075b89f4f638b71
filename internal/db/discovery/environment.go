package discovery

import (
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// EnvironmentConnectionString proposes a connection string from the
// environment: DATABASE_URL as-is, else a postgres:// URL assembled from the
// libpq variables PGHOST, PGPORT, PGUSER, PGDATABASE and PGSSLMODE.
//
// PGPASSWORD is left out of the URL; pgx reads it from the environment when
// the URL carries no password. Returns "" when nothing is set.
func EnvironmentConnectionString() string {
	if dsn := strings.TrimSpace(os.Getenv("DATABASE_URL")); dsn != "" {
		return dsn
	}

	host := os.Getenv("PGHOST")
	portStr := os.Getenv("PGPORT")
	database := os.Getenv("PGDATABASE")
	user := os.Getenv("PGUSER")
	sslMode := os.Getenv("PGSSLMODE")

	if host == "" && database == "" && user == "" {
		return ""
	}

	if host == "" {
		host = "localhost"
	}
	if user == "" {
		user = os.Getenv("USER")
	}
	if database == "" {
		database = user
	}

	port := 5432
	if portStr != "" {
		if p, err := strconv.Atoi(portStr); err == nil && p > 0 && p <= 65535 {
			port = p
		}
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(host, strconv.Itoa(port)),
		Path:   "/" + database,
	}
	if user != "" {
		u.User = url.User(user)
	}
	if sslMode != "" {
		u.RawQuery = url.Values{"sslmode": []string{sslMode}}.Encode()
	}
	return u.String()
}
