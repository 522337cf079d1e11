package config

import (
	"net"
	"os"

	"github.com/go-sql-driver/mysql"
)

const defaultDSN = "myapp:mypassword123@tcp(localhost:3306)/sprayguard?parseTime=true"

// DatabaseSettings are the MySQL connection parameters taken from the environment
type DatabaseSettings struct {
	User     string
	Password string
	Host     string
	Port     string
	Name     string
}

func databaseSettingsFromEnv() DatabaseSettings {
	return DatabaseSettings{
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		Name:     os.Getenv("DB_NAME"),
	}
}

func (s DatabaseSettings) complete() bool {
	return s.User != "" && s.Password != "" && s.Host != "" && s.Port != "" && s.Name != ""
}

// DSN formats the settings as a go-sql-driver DSN with time parsing enabled
func (s DatabaseSettings) DSN() string {
	cfg := mysql.NewConfig()
	cfg.User = s.User
	cfg.Passwd = s.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(s.Host, s.Port)
	cfg.DBName = s.Name
	cfg.ParseTime = true
	return cfg.FormatDSN()
}

// GetDatabaseDSN returns the connection string from the DB_* variables when
// all are set, then DATABASE_DSN, then the local development default
func GetDatabaseDSN() string {
	if s := databaseSettingsFromEnv(); s.complete() {
		return s.DSN()
	}
	return getEnv("DATABASE_DSN", defaultDSN)
}
