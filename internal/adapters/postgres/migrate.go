package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"strings"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Migration is one embedded SQL file.
type Migration struct {
	Name string
	SQL  string
}

// Migrations returns the embedded migrations for direction "up" (ascending)
// or "down" (descending).
func Migrations(direction string) ([]Migration, error) {
	if direction != "up" && direction != "down" {
		return nil, fmt.Errorf("unknown migration direction %q", direction)
	}
	names, err := fs.Glob(migrationFS, "migrations/*."+direction+".sql")
	if err != nil {
		return nil, err
	}
	slices.Sort(names)
	if direction == "down" {
		slices.Reverse(names)
	}

	out := make([]Migration, 0, len(names))
	for _, n := range names {
		data, err := migrationFS.ReadFile(n)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", n, err)
		}
		out = append(out, Migration{Name: strings.TrimPrefix(n, "migrations/"), SQL: string(data)})
	}
	return out, nil
}

// Migrate applies the embedded migrations in the given direction and returns
// the names applied.
func (db *DB) Migrate(ctx context.Context, direction string) ([]string, error) {
	migs, err := Migrations(direction)
	if err != nil {
		return nil, err
	}
	var applied []string
	for _, m := range migs {
		if _, err := db.Pool.Exec(ctx, m.SQL); err != nil {
			return applied, fmt.Errorf("exec %s: %w", m.Name, err)
		}
		applied = append(applied, m.Name)
	}
	return applied, nil
}
