package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/shareit/internal/flagx"
	"github.com/dmitrijs2005/shareit/internal/timex"
)

// JSONConfig is the on-disk shape of the config file. Missing or empty
// fields leave the current value untouched.
type JSONConfig struct {
	Env                     string         `json:"env"`
	EndpointAddrHTTP        string         `json:"endpoint_addr_http"`
	PublicBaseURL           string         `json:"public_base_url"`
	TableStore              string         `json:"table_store"`
	DatabaseDSN             string         `json:"database_dsn"`
	StorageType             string         `json:"storage_type"`
	LocalStorageDir         string         `json:"local_storage_dir"`
	S3RootUser              string         `json:"s3_root_user"`
	S3RootPassword          string         `json:"s3_root_password"`
	S3Bucket                string         `json:"s3_bucket"`
	S3Region                string         `json:"s3_region"`
	S3BaseEndpoint          string         `json:"s3_base_endpoint"`
	S3PublicBaseURL         string         `json:"s3_public_base_url"`
	SecretKey               string         `json:"secret_key"`
	SessionValidityDuration timex.Duration `json:"session_validity_duration"`
	PasswordScheme          string         `json:"password_scheme"`
	MaxUploadSize           int64          `json:"max_upload_size"`
}

// parseJSON overlays the file named by -c/-config, if any.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var c JSONConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.Env, c.Env)
	setString(&cfg.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&cfg.PublicBaseURL, c.PublicBaseURL)
	setString(&cfg.TableStore, c.TableStore)
	setString(&cfg.DatabaseDSN, c.DatabaseDSN)
	setString(&cfg.StorageType, c.StorageType)
	setString(&cfg.LocalStorageDir, c.LocalStorageDir)
	setString(&cfg.S3RootUser, c.S3RootUser)
	setString(&cfg.S3RootPassword, c.S3RootPassword)
	setString(&cfg.S3Bucket, c.S3Bucket)
	setString(&cfg.S3Region, c.S3Region)
	setString(&cfg.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&cfg.S3PublicBaseURL, c.S3PublicBaseURL)
	setString(&cfg.SecretKey, c.SecretKey)
	setString(&cfg.PasswordScheme, c.PasswordScheme)

	if c.SessionValidityDuration.Duration > 0 {
		cfg.SessionValidityDuration = c.SessionValidityDuration.Duration
	}
	if c.MaxUploadSize > 0 {
		cfg.MaxUploadSize = c.MaxUploadSize
	}

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
