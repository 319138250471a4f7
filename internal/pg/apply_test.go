package pg

import (
	"context"
	"testing"

	"crudgen/internal/dsl"
	"crudgen/internal/reference"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.uber.org/zap/zaptest"
)

func TestApplyDDL_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}
	ctx := context.Background()

	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("crudgen"),
		postgres.WithUsername("crudgen"),
		postgres.WithPassword("crudgen"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	url, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := Open(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := zaptest.NewLogger(t)
	cat := reference.Default()

	cliente := &dsl.Entity{
		Name:   "Cliente",
		Table:  "cliente",
		Fields: []dsl.Field{{Name: "nome", Type: dsl.TypeString, NotNull: true}},
	}
	ddl, err := GenerateDDL(pedido(), cat)
	require.NoError(t, err)

	// целевых таблиц ещё нет: внешние ключи пропускаются, таблицы создаются
	require.NoError(t, ApplyDDL(ctx, db, ddl, log))

	clienteDDL, err := GenerateDDL(cliente, cat)
	require.NoError(t, err)
	require.NoError(t, ApplyDDL(ctx, db, clienteDDL, log))

	// повторный прогон идемпотентен
	require.NoError(t, ApplyDDL(ctx, db, ddl, log))

	var n int
	err = db.QueryRowContext(ctx,
		`select count(*) from information_schema.tables where table_name in ('tb_pedido', 'tb_pedido_cupons', 'cliente')`).Scan(&n)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	err = db.QueryRowContext(ctx,
		`select count(*) from information_schema.table_constraints where constraint_name = 'tb_pedido_cliente_fk'`).Scan(&n)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}
