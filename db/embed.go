// Package db provides the embedded database schema applied by the e2e
// harness and deployment tooling.
package db

import _ "embed"

// Schema contains the DDL statements for all application tables.
//
//go:embed migrations/001_schema.sql
var Schema string
