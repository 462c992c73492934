package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/studyshelf/catalog-api/database"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	// Open the catalog store
	store, err := database.StartGORM()
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		log.Fatalf("Failed to migrate store: %v", err)
	}

	// Run seeds
	separator := strings.Repeat("=", 60)
	fmt.Println(separator)
	fmt.Println("StudyShelf Catalog - Store Seeding")
	fmt.Println(separator)
	fmt.Println()

	if err := database.RunSeeds(store.DB()); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	fmt.Println()
	fmt.Println(separator)
	fmt.Println("Seeding completed successfully!")
	fmt.Println(separator)
}
