package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, ":8080", c.EndpointAddrHTTP)
	assert.Equal(t, TableStorePostgres, c.TableStore)
	assert.Equal(t, StorageS3, c.StorageType)
	assert.Equal(t, "files", c.S3Bucket)
	assert.Equal(t, 12*time.Hour, c.SessionValidityDuration)
	assert.Equal(t, PasswordSchemePlain, c.PasswordScheme)
	assert.Equal(t, int64(50<<20), c.MaxUploadSize)
	require.NoError(t, c.Validate())
}

func TestParseFlags(t *testing.T) {
	c := defaults()

	err := parseFlags(c, []string{
		"-a", "127.0.0.1:9090", "-d", "db", "-s", "secret", "-t", "30",
		"-u", "user", "-p", "password", "-b", "bucket", "-g", "us-west-1", "-e", "http://endpoint",
		"-m", "memory", "-o", "local", "-l", "/data", "-w", "bcrypt", "-c", "ignored.json",
	})
	require.NoError(t, err)

	want := defaults()
	want.EndpointAddrHTTP = "127.0.0.1:9090"
	want.DatabaseDSN = "db"
	want.SecretKey = "secret"
	want.SessionValidityDuration = 30 * time.Minute
	want.S3RootUser = "user"
	want.S3RootPassword = "password"
	want.S3Bucket = "bucket"
	want.S3Region = "us-west-1"
	want.S3BaseEndpoint = "http://endpoint"
	want.TableStore = TableStoreMemory
	want.StorageType = StorageLocal
	want.LocalStorageDir = "/data"
	want.PasswordScheme = PasswordSchemeBcrypt

	assert.Empty(t, cmp.Diff(want, c))
}

func TestParseFlags_KeepsSessionValidityWhenAbsent(t *testing.T) {
	c := defaults()
	c.SessionValidityDuration = 90 * time.Second

	require.NoError(t, parseFlags(c, []string{"-a", ":1"}))
	assert.Equal(t, 90*time.Second, c.SessionValidityDuration)
}

func TestParseFlags_BadValue(t *testing.T) {
	require.Error(t, parseFlags(defaults(), []string{"-t", "soon"}))
}

func TestParseJSON(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"endpoint_addr_http":        "www.example:9000",
		"table_store":               "memory",
		"storage_type":              "local",
		"local_storage_dir":         "/var/shareit",
		"secret_key":                "my_secret_key",
		"session_validity_duration": "3m",
		"max_upload_size":           1024,
	})

	c := defaults()
	require.NoError(t, parseJSON(c, []string{"-config", path}))

	assert.Equal(t, "www.example:9000", c.EndpointAddrHTTP)
	assert.Equal(t, TableStoreMemory, c.TableStore)
	assert.Equal(t, StorageLocal, c.StorageType)
	assert.Equal(t, "/var/shareit", c.LocalStorageDir)
	assert.Equal(t, "my_secret_key", c.SecretKey)
	assert.Equal(t, 3*time.Minute, c.SessionValidityDuration)
	assert.Equal(t, int64(1024), c.MaxUploadSize)
	// untouched
	assert.Equal(t, "files", c.S3Bucket)
}

func TestParseJSON_NoFile(t *testing.T) {
	c := defaults()
	require.NoError(t, parseJSON(c, []string{"-a", ":1"}))
	assert.Empty(t, cmp.Diff(defaults(), c))
}

func TestParseJSON_Errors(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{ not json`), 0o600))

	require.Error(t, parseJSON(defaults(), []string{"-c", bad}))
	require.Error(t, parseJSON(defaults(), []string{"-c", filepath.Join(t.TempDir(), "missing.json")}))
}

func TestParseEnv(t *testing.T) {
	t.Setenv("SHAREIT_STORAGE", "memory")
	t.Setenv("SHAREIT_SESSION_VALIDITY", "45m")
	t.Setenv("SHAREIT_MAX_UPLOAD_SIZE", "2048")

	c := defaults()
	require.NoError(t, parseEnv(c))

	assert.Equal(t, StorageMemory, c.StorageType)
	assert.Equal(t, 45*time.Minute, c.SessionValidityDuration)
	assert.Equal(t, int64(2048), c.MaxUploadSize)
	assert.Equal(t, ":8080", c.EndpointAddrHTTP)
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"endpoint_addr_http": ":7000",
		"table_store":        "memory",
		"storage_type":       "memory",
	})
	t.Setenv("SHAREIT_HTTP_ADDR", ":7001")

	c, err := LoadConfig([]string{"-c", path, "-a", ":7002"})
	require.NoError(t, err)

	assert.Equal(t, ":7002", c.EndpointAddrHTTP)
	assert.Equal(t, TableStoreMemory, c.TableStore)
	assert.Equal(t, StorageMemory, c.StorageType)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown table store", func(c *Config) { c.TableStore = "mongo" }},
		{"empty dsn", func(c *Config) { c.DatabaseDSN = "" }},
		{"unknown storage", func(c *Config) { c.StorageType = "ftp" }},
		{"empty bucket", func(c *Config) { c.S3Bucket = "" }},
		{"empty local dir", func(c *Config) { c.StorageType = StorageLocal; c.LocalStorageDir = "" }},
		{"unknown scheme", func(c *Config) { c.PasswordScheme = "md5" }},
		{"empty secret", func(c *Config) { c.SecretKey = "" }},
		{"zero session", func(c *Config) { c.SessionValidityDuration = 0 }},
		{"zero upload", func(c *Config) { c.MaxUploadSize = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaults()
			tt.mutate(c)
			require.Error(t, c.Validate())
		})
	}

	c := defaults()
	c.TableStore = TableStoreMemory
	c.DatabaseDSN = ""
	require.NoError(t, c.Validate())
}
