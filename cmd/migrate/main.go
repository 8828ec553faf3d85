package main

import (
	"database/sql"
	"flag"
	"log"

	"github.com/limbo/sovet/internal/repository"
	"github.com/limbo/sovet/pkg/config"
	_ "github.com/lib/pq"
	"github.com/pressly/goose"
)

// Applies or rolls back the directory schema: migrate [-dir ./migrations] up|down|status
func main() {
	dir := flag.String("dir", "./migrations", "migrations directory")
	flag.Parse()
	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	cfg := config.New()
	pgcfg := &repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	}
	db, err := sql.Open("postgres", pgcfg.ConnString()+"?sslmode="+cfg.GetStringOr("POSTGRES_SSLMODE", "disable"))
	if err != nil {
		log.Fatal("opening db error: ", err)
	}
	defer db.Close()
	if err = goose.SetDialect("postgres"); err != nil {
		log.Fatal(err)
	}

	switch command {
	case "up":
		err = goose.Up(db, *dir)
	case "down":
		err = goose.Down(db, *dir)
	case "status":
		err = goose.Status(db, *dir)
	default:
		log.Fatalf("unknown command %q", command)
	}
	if err != nil {
		log.Fatal("migration error: ", err)
	}
}
