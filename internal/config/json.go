package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/accountkeeper/internal/flagx"
	"github.com/dmitrijs2005/accountkeeper/internal/timex"
)

// JsonConfig is the on-disk shape of Config. Pointer fields distinguish
// "absent" from a zero value so a partial file only overrides what it names.
type JsonConfig struct {
	Backend        *string         `json:"backend"`
	StoreKey       *string         `json:"store_key"`
	DataDir        *string         `json:"data_dir"`
	SQLiteFile     *string         `json:"sqlite_file"`
	DatabaseDSN    *string         `json:"database_dsn"`
	RedisAddr      *string         `json:"redis_addr"`
	RedisPassword  *string         `json:"redis_password"`
	RedisDB        *int            `json:"redis_db"`
	RedisTTL       *timex.Duration `json:"redis_ttl"`
	S3Bucket       *string         `json:"s3_bucket"`
	S3Region       *string         `json:"s3_region"`
	S3BaseEndpoint *string         `json:"s3_base_endpoint"`
	S3AccessKey    *string         `json:"s3_access_key"`
	S3SecretKey    *string         `json:"s3_secret_key"`
	S3Prefix       *string         `json:"s3_prefix"`
	Passphrase     *string         `json:"passphrase"`
	PersistTimeout *timex.Duration `json:"persist_timeout"`
	LogLevel       *string         `json:"log_level"`
	LogFormat      *string         `json:"log_format"`
}

// parseJson overlays cfg with the file named by -c/-config, if any.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.Backend, jc.Backend)
	setString(&cfg.StoreKey, jc.StoreKey)
	setString(&cfg.DataDir, jc.DataDir)
	setString(&cfg.SQLiteFile, jc.SQLiteFile)
	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.RedisAddr, jc.RedisAddr)
	setString(&cfg.RedisPassword, jc.RedisPassword)
	if jc.RedisDB != nil {
		cfg.RedisDB = *jc.RedisDB
	}
	if jc.RedisTTL != nil {
		cfg.RedisTTL = jc.RedisTTL.Duration
	}
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	setString(&cfg.S3Prefix, jc.S3Prefix)
	setString(&cfg.Passphrase, jc.Passphrase)
	if jc.PersistTimeout != nil {
		cfg.PersistTimeout = jc.PersistTimeout.Duration
	}
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
