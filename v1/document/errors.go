package document

import (
	"errors"
	"fmt"

	"github.com/Aleph-Alpha/pgdoc/v1/serializer"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Errors returned by document operations. Driver failures are re-tagged with
// ErrDuplicateKey or ErrConnection while keeping the original error in the
// chain, so errors.As still reaches *pgconn.PgError or *pq.Error.
var (
	// ErrNoConnectionSource is returned when an operation needs the default
	// connection and no source has been registered.
	ErrNoConnectionSource = errors.New("no connection source configured")

	// ErrConnection is returned when the driver fails to reach or use the database.
	ErrConnection = errors.New("database connection error")

	// ErrDuplicateKey is returned when an insert conflicts with an existing identity.
	ErrDuplicateKey = errors.New("duplicate key violation")

	// ErrAmbiguousID is returned when a lookup by identity matches more than
	// one document, which means the unique key index is missing or corrupt.
	ErrAmbiguousID = errors.New("more than one document matches the id")

	// ErrNoRows is returned by CustomScalar when the statement yields no row.
	ErrNoRows = errors.New("query returned no rows")

	// ErrTransactionsUnsupported is returned by Store.Transaction when the
	// configured source does not implement Transactor.
	ErrTransactionsUnsupported = errors.New("connection source does not support transactions")
)

// SQLSTATE unique_violation.
const uniqueViolation = "23505"

// TranslateError re-tags a driver error into one of the package sentinels.
// Errors that already carry a pgdoc classification are returned unchanged.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrDuplicateKey),
		errors.Is(err, ErrConnection),
		errors.Is(err, ErrNoConnectionSource),
		errors.Is(err, ErrAmbiguousID),
		errors.Is(err, ErrNoRows),
		errors.Is(err, serializer.ErrDeserialization):
		return err
	case isUniqueViolation(err):
		return fmt.Errorf("%w: %w", ErrDuplicateKey, err)
	default:
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	return false
}

// IsDuplicateKey checks if the error is a duplicate key violation.
func IsDuplicateKey(err error) bool {
	return errors.Is(err, ErrDuplicateKey)
}

// IsConnection checks if the error is a driver-level failure.
func IsConnection(err error) bool {
	return errors.Is(err, ErrConnection)
}

// IsNoConnectionSource checks if the error reports a missing connection source.
func IsNoConnectionSource(err error) bool {
	return errors.Is(err, ErrNoConnectionSource)
}
