// Package migrations хранит SQL-миграции. Postgres читает их с диска (file://migrations),
// SQLite - из встроенной файловой системы, чтобы бинарь не зависел от рабочей директории.
package migrations

import "embed"

//go:embed sqlite/*.sql
var SQLite embed.FS
