package postgres

import (
	"context"
	"regexp"
	"strings"
	"time"

	"portfolio/internal/stats"

	sq "github.com/Masterminds/squirrel"

	"github.com/jmoiron/sqlx"
	"github.com/twitsprout/tools"
	"github.com/twitsprout/tools/postgres"
)

type Config postgres.Config

var matchFirstCap = regexp.MustCompile("(.)([A-Z][a-z]+)")
var matchAllCap = regexp.MustCompile("([a-z0-9])([A-Z])")

func ToSnakeCase(str string) string {
	snake := matchFirstCap.ReplaceAllString(str, "${1}_${2}")
	snake = matchAllCap.ReplaceAllString(snake, "${1}_${2}")
	return strings.ToLower(snake)
}

// Postgres represents the type to interact with the PostgreSQL database.
type Postgres struct {
	sqldb *sqlx.DB
	db    *postgres.DB
}

type QueryValues struct {
	query string
	args  []interface{}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// queryTimeout bounds every operation run through the DB's Do method.
const queryTimeout = 15 * time.Second

// New creates a new Postgres store. Every operation's duration is recorded in
// sc, labelled by operation and outcome.
func New(c Config, sc tools.StatsClient) (*Postgres, error) {
	if sc == nil {
		sc = stats.Nop{}
	}
	db, err := postgres.NewDB(postgres.Config(c),
		postgres.WithTimeout(queryTimeout),
		postgres.WithOnComplete(recordDuration(sc)),
	)
	if err != nil {
		return nil, err
	}
	sqldb := sqlx.NewDb(db.SQLDB(), "postgres")
	sqldb.MapperFunc(ToSnakeCase)
	return &Postgres{sqldb: sqldb, db: db}, nil
}

// Close releases the connection pool.
func (p *Postgres) Close() error {
	return p.db.Close()
}

func recordDuration(sc tools.StatsClient) func(context.Context, string, time.Time, error) error {
	return func(_ context.Context, label string, start time.Time, err error) error {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		sc.Histogram(stats.PostgresQueryDuration, time.Since(start).Seconds(), []string{label, outcome})
		return err
	}
}
