package config

import (
	"errors"
	"fmt"
)

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error

	switch c.TableStore {
	case TableStorePostgres:
		if c.DatabaseDSN == "" {
			errs = append(errs, errors.New("database dsn is empty"))
		}
	case TableStoreMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown table store %q", c.TableStore))
	}

	switch c.StorageType {
	case StorageS3:
		if c.S3Bucket == "" {
			errs = append(errs, errors.New("s3 bucket is empty"))
		}
	case StorageLocal:
		if c.LocalStorageDir == "" {
			errs = append(errs, errors.New("local storage dir is empty"))
		}
	case StorageMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown storage type %q", c.StorageType))
	}

	switch c.PasswordScheme {
	case PasswordSchemePlain, PasswordSchemeBcrypt:
	default:
		errs = append(errs, fmt.Errorf("unknown password scheme %q", c.PasswordScheme))
	}

	if c.SecretKey == "" {
		errs = append(errs, errors.New("secret key is empty"))
	}
	if c.SessionValidityDuration <= 0 {
		errs = append(errs, errors.New("session validity must be positive"))
	}
	if c.MaxUploadSize <= 0 {
		errs = append(errs, errors.New("max upload size must be positive"))
	}

	return errors.Join(errs...)
}
