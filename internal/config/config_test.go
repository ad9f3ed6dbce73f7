package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("24110")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "24110" {
		t.Errorf("Expected default port 24110, got %s", cfg.Server.Port)
	}
	if cfg.Discussion.Storage != CommentStorageRemote {
		t.Errorf("Expected remote comment storage, got %s", cfg.Discussion.Storage)
	}
	if cfg.Discussion.Strict {
		t.Error("Strict mode should be off by default")
	}
	if len(cfg.Cassandra.Hosts) != 1 || cfg.Cassandra.Hosts[0] != "localhost:9042" {
		t.Errorf("Unexpected cassandra hosts: %v", cfg.Cassandra.Hosts)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DISCUSSION_URL", "http://discussion:24130/")
	t.Setenv("DISCUSSION_TIMEOUT", "2s")
	t.Setenv("DISCUSSION_STRICT", "true")
	t.Setenv("COMMENT_STORAGE", "local")
	t.Setenv("CASSANDRA_HOSTS", "cass-1:9042, cass-2:9042,")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")

	cfg, err := Load("24110")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "9000" {
		t.Errorf("Expected port 9000, got %s", cfg.Server.Port)
	}
	if cfg.Discussion.URL != "http://discussion:24130" {
		t.Errorf("Expected trailing slash trimmed, got %s", cfg.Discussion.URL)
	}
	if cfg.Discussion.Timeout != 2*time.Second {
		t.Errorf("Expected 2s timeout, got %v", cfg.Discussion.Timeout)
	}
	if !cfg.Discussion.Strict {
		t.Error("Expected strict mode")
	}
	if cfg.Discussion.Storage != CommentStorageLocal {
		t.Errorf("Expected local storage, got %s", cfg.Discussion.Storage)
	}
	if len(cfg.Cassandra.Hosts) != 2 || cfg.Cassandra.Hosts[1] != "cass-2:9042" {
		t.Errorf("Unexpected cassandra hosts: %v", cfg.Cassandra.Hosts)
	}
	if cfg.Database.MaxOpenConns != 25 {
		t.Errorf("Invalid int should fall back to default, got %d", cfg.Database.MaxOpenConns)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing db host", mutate: func(c *Config) { c.Database.Host = "" }, wantErr: true},
		{name: "unknown storage", mutate: func(c *Config) { c.Discussion.Storage = "s3" }, wantErr: true},
		{name: "remote without url", mutate: func(c *Config) { c.Discussion.URL = "" }, wantErr: true},
		{
			name: "local without url",
			mutate: func(c *Config) {
				c.Discussion.Storage = CommentStorageLocal
				c.Discussion.URL = ""
			},
		},
		{name: "no cassandra hosts", mutate: func(c *Config) { c.Cassandra.Hosts = nil }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("24110")
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			tt.mutate(cfg)
			err = cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	want := "host=db port=5432 user=u password=p dbname=n sslmode=disable"
	if got := c.GetDSN(); got != want {
		t.Errorf("GetDSN() = %q, want %q", got, want)
	}
}
