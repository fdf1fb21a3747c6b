package document

import (
	"testing"

	"github.com/Aleph-Alpha/pgdoc/v1/query"
	"github.com/stretchr/testify/assert"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/mock/gomock"
)

func TestFXModuleRegistersAndClosesSource(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := NewMockConnectionSource(ctrl)
	src.EXPECT().Close().Return(nil).Times(1)

	var store *Store
	app := fxtest.New(t,
		fx.Provide(
			func() Config { return Config{IDField: "Key", Strategy: "key-column"} },
			fx.Annotate(
				func() *MockConnectionSource { return src },
				fx.As(new(ConnectionSource)),
			),
		),
		FXModule,
		fx.Populate(&store),
	)

	app.RequireStart()

	assert.Equal(t, "Key", store.IDField())
	assert.Equal(t, query.KeyColumn, store.Strategy())
	got, err := store.Source()
	assert.NoError(t, err)
	assert.Same(t, src, got)

	app.RequireStop()
}

func TestFXModuleWithoutSource(t *testing.T) {
	var store *Store
	app := fxtest.New(t,
		fx.Provide(func() Config { return Config{} }),
		FXModule,
		fx.Populate(&store),
	)
	app.RequireStart()

	_, err := store.Source()
	assert.ErrorIs(t, err, ErrNoConnectionSource)

	app.RequireStop()
}
