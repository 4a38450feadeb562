package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/tern/v2/migrate"

	"github.com/jhoicas/Carnes-api/pkg/logger"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// versionTable guarda la última migración aplicada.
const versionTable = "schema_version"

// migrations scripts NNNN_nombre.sql numerados sin huecos.
func migrations() (fs.FS, error) {
	return fs.Sub(migrationFS, "migrations")
}

// Migrate aplica con tern las migraciones pendientes sobre una conexión del pool.
func Migrate(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) error {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("adquirir conexión: %w", err)
	}
	defer conn.Release()

	m, err := migrate.NewMigrator(ctx, conn.Conn(), versionTable)
	if err != nil {
		return fmt.Errorf("crear migrador: %w", err)
	}
	src, err := migrations()
	if err != nil {
		return err
	}
	if err := m.LoadMigrations(src); err != nil {
		return fmt.Errorf("cargar migraciones: %w", err)
	}
	m.OnStart = func(sequence int32, name, direction, _ string) {
		log.Info().Int32("sequence", sequence).Str("name", name).Str("direction", direction).Msg("aplicando migración")
	}
	if err := m.Migrate(ctx); err != nil {
		return fmt.Errorf("aplicar migraciones: %w", err)
	}
	return nil
}
