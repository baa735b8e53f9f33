package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"parcel-delivery/config"
	"parcel-delivery/database"
	"parcel-delivery/database/seeders"
	"parcel-delivery/repository"
)

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  go run tools/migrate.go indexes            - Create collection indexes")
	fmt.Println("  go run tools/migrate.go seed-admin <email> - Create or promote an admin user")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	cfg := config.Load()
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, db, err := database.InitDB(ctx, cfg)
	if err != nil {
		fmt.Printf("Failed to connect to MongoDB: %v\n", err)
		os.Exit(1)
	}
	defer client.Disconnect(context.Background())

	switch os.Args[1] {
	case "indexes":
		fmt.Println("Creating indexes...")
		if err := repository.EnsureIndexes(ctx, db); err != nil {
			fmt.Printf("Index creation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Indexes are up to date")

	case "seed-admin":
		if len(os.Args) < 3 {
			fmt.Println("Please provide the admin email")
			fmt.Println("Example: go run tools/migrate.go seed-admin ops@example.com")
			return
		}
		store := repository.NewMongoStore(client, db, cfg.MongoTransactions)
		if err := seeders.SeedAdmin(ctx, store.Users(), os.Args[2]); err != nil {
			fmt.Printf("Seeding admin failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s is now an admin\n", os.Args[2])

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		usage()
	}
}
