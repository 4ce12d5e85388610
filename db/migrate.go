package main

import (
	"flag"
	"fmt"
	"log"

	migrate "github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

var (
	db         = flag.String("database", "portfolio", "")
	host       = flag.String("host", "localhost:5432", "")
	user       = flag.String("user", "postgres", "")
	pass       = flag.String("password", "", "")
	migrations = flag.String("migrations", "file://db/migrations", "migrations source URL")
	down       = flag.Bool("down", false, "roll back the latest migration instead of applying all")
)

func main() {
	flag.Parse()
	dsn := fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable", *user, *pass, *host, *db)
	m, err := migrate.New(*migrations, dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer m.Close()

	if *down {
		err = m.Steps(-1)
	} else {
		err = m.Up()
	}
	if err != nil && err != migrate.ErrNoChange {
		log.Fatal(err)
	}

	version, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		log.Fatal(err)
	}
	log.Printf("schema at version %d (dirty: %t)", version, dirty)
}
