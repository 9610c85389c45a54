package db

import (
	"testing"

	"github.com/shinyyama/billing-api/internal/config"
)

func TestBuildDSN(t *testing.T) {
	base := config.Config{DBUser: "app", DBPassword: "pw", DBName: "billing", DBPort: "3306"}
	const opts = "?charset=utf8mb4&parseTime=True&loc=UTC"

	tests := []struct {
		name string
		mod  func(c *config.Config)
		want string
	}{
		{"host and port", func(c *config.Config) { c.DBHost = "db.internal" }, "app:pw@tcp(db.internal:3306)/billing" + opts},
		{"tcp passthrough", func(c *config.Config) { c.DBHost = "tcp(10.0.0.2:3307)" }, "app:pw@tcp(10.0.0.2:3307)/billing" + opts},
		{"unix passthrough", func(c *config.Config) { c.DBHost = "unix(/tmp/mysql.sock)" }, "app:pw@unix(/tmp/mysql.sock)/billing" + opts},
		{"socket path", func(c *config.Config) { c.DBHost = "/var/run/mysqld.sock" }, "app:pw@unix(/var/run/mysqld.sock)/billing" + opts},
		{"cloud sql", func(c *config.Config) {
			c.DBHost = "ignored"
			c.InstanceConnectionName = "proj:region:inst"
		}, "app:pw@unix(/cloudsql/proj:region:inst)/billing" + opts},
		{"database url wins", func(c *config.Config) {
			c.DBHost = "db.internal"
			c.DatabaseURL = "u:p@tcp(x:1)/y"
		}, "u:p@tcp(x:1)/y"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mod(&cfg)
			if got := BuildDSN(&cfg); got != tt.want {
				t.Fatalf("got=%q want=%q", got, tt.want)
			}
		})
	}
}
