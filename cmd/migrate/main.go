package main

import (
	"database/sql"
	"fmt"
	"os"

	"whatsapp-inbox/migrations"
	"whatsapp-inbox/paths"
	"whatsapp-inbox/storage"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "status":
		if err := run(migrations.Status); err != nil {
			fmt.Printf("Error showing status: %v\n", err)
			os.Exit(1)
		}
	case "upgrade":
		if err := run(migrations.Up); err != nil {
			fmt.Printf("Error running upgrade: %v\n", err)
			os.Exit(1)
		}
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Migration CLI Tool")
	fmt.Println("")
	fmt.Println("Usage:")
	fmt.Println("  go run cmd/migrate/main.go status")
	fmt.Println("  go run cmd/migrate/main.go upgrade")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  status      Show migration status (applied and pending)")
	fmt.Println("  upgrade     Apply all pending migrations")
}

// run opens the inbox database and hands its *sql.DB to a goose command.
func run(fn func(db *sql.DB) error) error {
	if err := paths.EnsureDataDirectories(); err != nil {
		return fmt.Errorf("failed to create data directories: %w", err)
	}

	gormDB, err := storage.InitDB(paths.InboxDBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	db, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(db)
}
