package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %s, want 8080", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %s, want development", cfg.Env)
	}
	if cfg.Mongo.Database != "eventsphere" {
		t.Errorf("Mongo.Database = %s, want eventsphere", cfg.Mongo.Database)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("Redis.Addr = %s, want localhost:6379", cfg.Redis.Addr)
	}
	if cfg.Upload.MaxBytes != 5242880 {
		t.Errorf("Upload.MaxBytes = %d, want 5242880", cfg.Upload.MaxBytes)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("MONGO_DB", "eventsphere_test")
	t.Setenv("UPLOAD_MAX_BYTES", "1024")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("Port = %s, want 9090", cfg.Port)
	}
	if cfg.JWTSecret != "test-secret" {
		t.Errorf("JWTSecret = %s, want test-secret", cfg.JWTSecret)
	}
	if cfg.Mongo.Database != "eventsphere_test" {
		t.Errorf("Mongo.Database = %s, want eventsphere_test", cfg.Mongo.Database)
	}
	if cfg.Upload.MaxBytes != 1024 {
		t.Errorf("Upload.MaxBytes = %d, want 1024", cfg.Upload.MaxBytes)
	}
}
