package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kktculasim/ulasim-backend/internal/config"
	"github.com/kktculasim/ulasim-backend/internal/database"
)

var requiredTables = []string{
	"companies",
	"routes",
	"schedules",
	"stops",
	"reports",
}

func main() {
	var dbURLFlag, driverFlag string
	flag.StringVar(&dbURLFlag, "database-url", "", "PostgreSQL connection string (overrides DATABASE_URL)")
	flag.StringVar(&driverFlag, "driver", "postgres", "database/sql driver: postgres or pgx")
	flag.Parse()

	// Optional .env in the working directory keeps secrets off the command line
	_ = godotenv.Load()

	dbURL := dbURLFlag
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set and -database-url was not provided")
	}

	db, err := database.NewConnection(config.DatabaseConfig{
		URL:                dbURL,
		Driver:             driverFlag,
		MaxConnections:     2,
		MaxIdleConnections: 1,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fmt.Println("Connected to database. Checking schema...")

	missing := 0
	for _, t := range requiredTables {
		var count int
		if err := db.GetContext(ctx, &count, fmt.Sprintf("SELECT COUNT(*) FROM %s", t)); err != nil {
			fmt.Printf("  ❌ %s: %v\n", t, err)
			missing++
			continue
		}
		fmt.Printf("  ✅ %s: %d rows\n", t, count)
	}

	// Calls the procedure with an impossible pair; only its existence matters
	_, err = database.NewSmartRouteRepository(db).FindSmartRoutes(ctx, "__schema_check__", "__schema_check__", "00:00:00")
	switch {
	case err == nil:
		fmt.Println("  ✅ get_smart_routes: callable")
	case errors.Is(err, database.ErrProcedureNotFound):
		fmt.Println("  ❌ get_smart_routes: not installed")
		missing++
	default:
		fmt.Printf("  ❌ get_smart_routes: %v\n", err)
		missing++
	}

	if missing > 0 {
		fmt.Printf("Schema check failed: %d problem(s)\n", missing)
		os.Exit(1)
	}
	fmt.Println("Schema looks good.")
}
