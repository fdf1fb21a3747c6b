package database

import (
	"context"
	"testing"
	"time"

	"github.com/Aleph-Alpha/pgdoc/v1/document"
	"github.com/Aleph-Alpha/pgdoc/v1/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/mock/gomock"
)

func TestConfigHelpers(t *testing.T) {
	pg := postgres.Config{Connection: postgres.Connection{ConnectionString: "postgres://localhost/docs"}}

	assert.Equal(t, DriverPgx, PgxConfig(pg).Driver)
	assert.Equal(t, DriverGorm, GormConfig(pg).Driver)
	assert.Equal(t, DriverLibpq, LibpqConfig(pg).Driver)
	assert.Equal(t, pg, LibpqConfig(pg).Postgres)
}

func TestOpenUnsupportedDriver(t *testing.T) {
	src, err := Open(context.Background(), Config{Driver: "mariadb"}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
	assert.Nil(t, src)
}

func TestOpenFailureReturnsNilSource(t *testing.T) {
	unreachable := postgres.Config{
		Connection: postgres.Connection{ConnectionString: "postgres://nobody@127.0.0.1:1/none?sslmode=disable&connect_timeout=1"},
	}

	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "pgx", cfg: PgxConfig(unreachable)},
		{name: "libpq", cfg: LibpqConfig(unreachable)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			src, err := Open(ctx, tt.cfg, nil)
			require.Error(t, err)
			assert.Nil(t, src)
		})
	}
}

func TestRegisterDatabaseLifecycleClosesSource(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := document.NewMockConnectionSource(ctrl)
	src.EXPECT().Close().Return(nil)

	lc := fxtest.NewLifecycle(t)
	RegisterDatabaseLifecycle(DatabaseLifecycleParams{Lifecycle: lc, Source: src})
	lc.RequireStart()
	lc.RequireStop()
}

func TestFXModuleRejectsUnsupportedDriver(t *testing.T) {
	app := fxtest.New(t,
		FXModule,
		fx.Provide(func() Config { return Config{Driver: "sqlite"} }),
	)
	err := app.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}
