// Package config loads runtime configuration for the medreminder CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://127.0.0.1:8080",
//	  "request_timeout": "30s",
//	  "store_dsn": "medreminder.db",
//	  "valkey_addr": "",
//	  "log_level": "info",
//	  "s3_bucket": "prescriptions",
//	  "s3_region": "eu-central-1"
//	}
//
// The package does not read environment variables directly; the AWS SDK
// still picks up its own environment when S3 keys are left empty.
package config
