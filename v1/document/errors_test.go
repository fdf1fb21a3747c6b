package document

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Aleph-Alpha/pgdoc/v1/serializer"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateError(t *testing.T) {
	deser := &serializer.DeserializationError{Target: "*Customer", Err: errors.New("bad")}
	dup := fmt.Errorf("%w: %w", ErrDuplicateKey, errors.New("already tagged"))

	tests := []struct {
		name    string
		err     error
		want    error
		same    bool
		wantNil bool
	}{
		{name: "nil", err: nil, wantNil: true},
		{name: "pgx unique violation", err: &pgconn.PgError{Code: "23505"}, want: ErrDuplicateKey},
		{name: "pq unique violation", err: &pq.Error{Code: "23505"}, want: ErrDuplicateKey},
		{name: "wrapped pgx unique violation", err: fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23505"}), want: ErrDuplicateKey},
		{name: "gorm duplicated key", err: fmt.Errorf("commit: %w", gorm.ErrDuplicatedKey), want: ErrDuplicateKey},
		{name: "other sqlstate", err: &pgconn.PgError{Code: "42P01"}, want: ErrConnection},
		{name: "plain error", err: errors.New("dial tcp: connection refused"), want: ErrConnection},
		{name: "context cancelled", err: context.Canceled, want: ErrConnection},
		{name: "deserialization kept", err: deser, want: serializer.ErrDeserialization, same: true},
		{name: "already tagged kept", err: dup, want: ErrDuplicateKey, same: true},
		{name: "no source kept", err: ErrNoConnectionSource, want: ErrNoConnectionSource, same: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TranslateError(tt.err)
			if tt.wantNil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
			assert.ErrorIs(t, got, tt.err)
			if tt.same {
				assert.Equal(t, tt.err, got)
			}
		})
	}
}
