package sqlite

import (
	"context"
	"fmt"
	"log/slog"
)

// indexSpec is one declared index. The version suffix on the name is how a
// definition change is rolled out: bump the suffix and the old index becomes
// an undeclared extra that the next reconcile drops.
type indexSpec struct {
	Name   string
	Table  string
	Column string
	Unique bool
}

var declaredIndexes = []indexSpec{
	{Name: "users_name_v0", Table: "users", Column: "name", Unique: true},
	{Name: "sessions_user_id_v0", Table: "sessions", Column: "user_id"},
	{Name: "sessions_secret_hash_v0", Table: "sessions", Column: "secret_hash", Unique: true},
	{Name: "sessions_created_at_v0", Table: "sessions", Column: "created_at"},
}

// ReconcileIndexes converges the database's explicit indexes onto the
// declared set: missing ones are created, undeclared ones are dropped.
// Auto-generated indexes (primary keys, column UNIQUE constraints) have no
// SQL text in sqlite_master and are left alone.
func (s *Store) ReconcileIndexes(ctx context.Context, log *slog.Logger) error {
	existing, err := s.listExplicitIndexes(ctx)
	if err != nil {
		return fmt.Errorf("list indexes: %w", err)
	}

	declared := make(map[string]struct{}, len(declaredIndexes))
	for _, spec := range declaredIndexes {
		declared[spec.Name] = struct{}{}

		if _, ok := existing[spec.Name]; ok {
			continue
		}

		unique := ""
		if spec.Unique {
			unique = "UNIQUE "
		}
		stmt := fmt.Sprintf("CREATE %sINDEX %s ON %s (%s)", unique, spec.Name, spec.Table, spec.Column)
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create index %s: %w", spec.Name, err)
		}
		log.Info("created index", "index", spec.Name, "table", spec.Table)
	}

	for name := range existing {
		if _, ok := declared[name]; ok {
			continue
		}
		if _, err := s.db.ExecContext(ctx, fmt.Sprintf("DROP INDEX %s", name)); err != nil {
			return fmt.Errorf("drop index %s: %w", name, err)
		}
		log.Info("dropped undeclared index", "index", name)
	}

	return nil
}

func (s *Store) listExplicitIndexes(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name FROM sqlite_master
		WHERE type = 'index' AND sql IS NOT NULL`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]struct{})
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out[name] = struct{}{}
	}
	return out, rows.Err()
}
