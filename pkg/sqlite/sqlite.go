package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/shenikar/crowd_alert_system/migrations"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

// NewSQLiteDB открывает файл базы и применяет недостающие миграции
func NewSQLiteDB(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// одно соединение: запись в sqlite сериализуется, а :memory: живет в рамках соединения
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// runMigrations применяет встроенные миграции на уже открытом соединении,
// иначе база :memory: мигрировалась бы в отдельном соединении
func runMigrations(db *sql.DB) error {
	source, err := iofs.New(migrations.SQLite, "sqlite")
	if err != nil {
		return fmt.Errorf("could not open embedded migrations: %w", err)
	}

	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create sqlite migrate driver: %w", err)
	}

	// m.Close не вызываем: он закрыл бы и db
	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
