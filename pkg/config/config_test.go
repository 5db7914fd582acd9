package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/gorm/logger"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Store.Driver != DriverMongo {
		t.Fatalf("expected mongo driver by default, got %s", cfg.Store.Driver)
	}
	if cfg.Mongo.PropertiesCollection != "properties" {
		t.Fatalf("expected properties collection, got %s", cfg.Mongo.PropertiesCollection)
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Fatalf("expected 10s shutdown timeout, got %s", cfg.Server.ShutdownTimeout)
	}
}

func TestLoadFileThenEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.yaml")
	content := []byte(`
server:
  port: "9000"
  shutdown_timeout: 3s
store:
  driver: postgres
database:
  host: db.internal
  name: listings
mongo:
  database: fromfile
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("DB_NAME", "fromenv")
	t.Setenv("DB_LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Server.Port != "9000" {
		t.Errorf("expected port 9000 from file, got %s", cfg.Server.Port)
	}
	if cfg.Server.ShutdownTimeout != 3*time.Second {
		t.Errorf("expected 3s from file, got %s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Store.Driver != DriverPostgres {
		t.Errorf("expected postgres from file, got %s", cfg.Store.Driver)
	}
	if cfg.DB.Host != "db.internal" {
		t.Errorf("expected db host from file, got %s", cfg.DB.Host)
	}
	if cfg.DB.DBName != "fromenv" {
		t.Errorf("expected env to override db name, got %s", cfg.DB.DBName)
	}
	if cfg.DB.LogLevel != logger.Warn {
		t.Errorf("expected warn gorm log level, got %v", cfg.DB.LogLevel)
	}
	if cfg.Mongo.Database != "fromfile" {
		t.Errorf("expected mongo database from file, got %s", cfg.Mongo.Database)
	}
	if cfg.Mongo.UsersCollection != "users" {
		t.Errorf("expected default users collection to survive, got %s", cfg.Mongo.UsersCollection)
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("STORE_DRIVER", "cassandra")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestGetDSN(t *testing.T) {
	c := DBConfig{Host: "h", Port: "1", User: "u", Password: "p", DBName: "d", SSLMode: "disable"}
	want := "host=h port=1 user=u password=p dbname=d sslmode=disable"
	if got := c.GetDSN(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
