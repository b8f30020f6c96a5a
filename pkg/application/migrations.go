package application

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// MigrationManager collects embedded schema files from modules and applies
// them in registration order. Schema files are idempotent (CREATE TABLE IF
// NOT EXISTS ...), so applying on every start is safe.
type MigrationManager interface {
	RegisterSchema(fs *embed.FS)
	Apply(ctx context.Context) error
}

func NewMigrationManager(pool *pgxpool.Pool) MigrationManager {
	return &migrationManager{pool: pool}
}

type migrationManager struct {
	pool    *pgxpool.Pool
	schemas []*embed.FS
}

func (m *migrationManager) RegisterSchema(fs *embed.FS) {
	m.schemas = append(m.schemas, fs)
}

func (m *migrationManager) Apply(ctx context.Context) error {
	for _, schema := range m.schemas {
		files, err := listSQLFiles(schema)
		if err != nil {
			return err
		}
		for _, file := range files {
			content, err := schema.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read schema %q: %w", file, err)
			}
			if _, err := m.pool.Exec(ctx, string(content)); err != nil {
				return fmt.Errorf("apply schema %q: %w", file, err)
			}
		}
	}
	return nil
}

func listSQLFiles(fsys fs.FS) ([]string, error) {
	var files []string
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".sql") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
