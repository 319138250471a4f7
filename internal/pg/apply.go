package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const (
	codeDuplicateObject = "42710"
	codeUndefinedTable  = "42P01"
)

// ApplyDDL выполняет фазы DDL по порядку ключей. Ожидается idempotent DDL (create ... if not exists).
func ApplyDDL(ctx context.Context, db *sql.DB, ddl map[string]string, log *zap.Logger) error {
	keys := make([]string, 0, len(ddl))
	for k := range ddl {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	for _, k := range keys {
		for _, stmt := range statements(ddl[k]) {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) {
					// constraint уже есть — повторный запуск
					if pgErr.Code == codeDuplicateObject {
						log.Info("DDL skipped (already exists)", zap.String("phase", k), zap.String("constraint", pgErr.ConstraintName))
						continue
					}
					// целевая таблица ещё не создана: внешний ключ добавится при её генерации
					if pgErr.Code == codeUndefinedTable && k == PhaseForeignKeys {
						log.Warn("DDL skipped (target table missing)", zap.String("phase", k), zap.String("message", pgErr.Message))
						continue
					}
				}
				return fmt.Errorf("DDL apply failed (%s): %w", k, err)
			}
		}
	}
	return nil
}

// statements режет фазу на отдельные команды, чтобы пропуск одной не ронял остальные.
func statements(sqlText string) []string {
	var out []string
	var buf strings.Builder
	for _, line := range strings.Split(sqlText, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		buf.WriteString(line)
		buf.WriteString("\n")
		if strings.HasSuffix(trimmed, ";") {
			out = append(out, strings.TrimSpace(buf.String()))
			buf.Reset()
		}
	}
	if s := strings.TrimSpace(buf.String()); s != "" {
		out = append(out, s)
	}
	return out
}
