package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/Aleph-Alpha/pgdoc/v1/database"
	"github.com/Aleph-Alpha/pgdoc/v1/document"
	"github.com/Aleph-Alpha/pgdoc/v1/logger"
	"github.com/Aleph-Alpha/pgdoc/v1/migrate"
	"github.com/Aleph-Alpha/pgdoc/v1/postgres"
	"github.com/Aleph-Alpha/pgdoc/v1/query"
	"github.com/Aleph-Alpha/pgdoc/v1/tracer"
	flag "github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

const (
	envConnStr  = "PGDOC_CONN_STR"
	envNoPrompt = "PGDOC_MIGRATE_NO_PROMPT"
	envOTLP     = "OTEL_EXPORTER_OTLP_ENDPOINT"
)

const usage = `Usage: pgdoc-migrate [flags] table...

Moves document identity from the id column into the document and replaces
the column with a unique index. The connection string is read from
PGDOC_CONN_STR.

Flags:
`

var (
	errNoTables  = errors.New("at least one table is required")
	errNoConnStr = errors.New(envConnStr + " is not set")
)

// openSource and newTracer are replaced in tests.
var (
	openSource = database.Open
	newTracer  = func(cfg tracer.Config) (*tracer.Tracer, error) {
		return tracer.NewClient(cfg)
	}
)

func run(ctx context.Context, in io.Reader, out, errOut io.Writer, args []string, env map[string]string) int {
	flagSet := flag.NewFlagSet("pgdoc-migrate", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	idField := flagSet.String("id-field", query.DefaultIDField, "Document property receiving the identity")
	yes := flagSet.BoolP("yes", "y", false, "Do not ask for confirmation")
	concurrency := flagSet.IntP("concurrency", "c", 4, "Tables migrated in parallel")
	driver := flagSet.String("driver", "pgx", "Connection driver: pgx, gorm or libpq")
	logLevel := flagSet.String("log-level", logger.Info, "Log level: debug, info, warning or error")
	help := flagSet.BoolP("help", "h", false, "Show this help")

	if err := flagSet.Parse(args); err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}
	if *help {
		fmt.Fprint(out, usage)
		fmt.Fprint(out, flagSet.FlagUsages())
		return 0
	}

	tables := flagSet.Args()
	if len(tables) == 0 {
		fmt.Fprintln(errOut, "error:", errNoTables)
		return 1
	}
	connStr := env[envConnStr]
	if connStr == "" {
		fmt.Fprintln(errOut, "error:", errNoConnStr)
		return 1
	}
	if *concurrency < 1 {
		*concurrency = 1
	}

	if !*yes && !noPrompt(env[envNoPrompt]) {
		ok, err := confirm(in, out, tables, *idField)
		if err != nil {
			fmt.Fprintln(errOut, "error:", err)
			return 1
		}
		if !ok {
			fmt.Fprintln(out, "aborted")
			return 0
		}
	}

	log := logger.NewLoggerClient(logger.Config{Level: *logLevel, ServiceName: "pgdoc-migrate"})
	defer func() { _ = log.Zap.Sync() }()

	store, err := document.NewStore(document.Config{IDField: *idField, Strategy: "key-column"})
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}
	store.WithLogger(log)

	// Spans are only exported when an OTLP endpoint is configured.
	tr, err := newTracer(tracer.Config{ServiceName: "pgdoc-migrate", EnableExport: env[envOTLP] != ""})
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}
	defer func() { _ = tr.Shutdown(context.Background()) }()
	store.WithTracerProvider(tr.Provider())

	src, err := openSource(ctx, database.Config{
		Driver:   *driver,
		Postgres: postgres.Config{Connection: postgres.Connection{ConnectionString: connStr}},
	}, log)
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}
	if err := store.UseSource(src); err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}
	defer func() { _ = store.Close() }()

	if err := migrateTables(ctx, out, store, tr, tables, *idField, *concurrency); err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}
	return 0
}

func noPrompt(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

func confirm(in io.Reader, out io.Writer, tables []string, idField string) (bool, error) {
	fmt.Fprintf(out, "Migrate %s to embedded key %q? This drops the id column. [y/N] ", strings.Join(tables, ", "), idField)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

func migrateTables(ctx context.Context, out io.Writer, store *document.Store, tr *tracer.Tracer, tables []string, idField string, concurrency int) error {
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, table := range tables {
		g.Go(func() error {
			spanCtx, span := tr.StartSpan(gctx, "migrate.table")
			defer span.End()

			result, err := migrate.KeyColumnToEmbedded(spanCtx, store, table, idField)
			tr.SetAttributes(span, map[string]interface{}{
				"table":            table,
				"id_field":         idField,
				"backfilled":       result.Backfilled,
				"already_migrated": result.AlreadyMigrated,
			})
			if err != nil {
				tr.RecordErrorOnSpan(span, err)
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			if result.AlreadyMigrated {
				fmt.Fprintf(out, "%s: already migrated, key index ensured\n", table)
			} else {
				fmt.Fprintf(out, "%s: migrated, %d documents backfilled\n", table, result.Backfilled)
			}
			return nil
		})
	}
	return g.Wait()
}
