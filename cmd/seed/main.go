package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/bookbridge/bookbridge/config"
	"github.com/bookbridge/bookbridge/pkg/helpers"
)

type seedListing struct {
	title       string
	author      string
	price       float64
	description string
	location    string
}

var sampleListings = []seedListing{
	{"The Alchemist", "Paulo Coelho", 150, "Well kept paperback, light shelf wear.", "Sector 62, Noida"},
	{"Wings of Fire", "A.P.J. Abdul Kalam", 120, "Autobiography, good condition.", "Sector 15, Noida"},
	{"Clean Code", "Robert C. Martin", 350, "Hardcover, a few pencil notes inside.", "Delhi"},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	dsn := cfg.PostgresDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@bookbridge.local"
	password := "password123"
	name := "Demo Seller"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET name=EXCLUDED.name
		RETURNING id
	`, email, hash, name).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s name=%s password=%s\n", id, email, name, password)

	for _, l := range sampleListings {
		var listingID string
		err := db.QueryRow(`
			INSERT INTO listings (title, author, price, description, location, image_url, image_key, seller_id, is_donated)
			VALUES ($1, $2, $3, $4, $5, '', '', $6, false)
			RETURNING id
		`, l.title, l.author, l.price, l.description, l.location, id).Scan(&listingID)
		if err != nil {
			log.Fatalf("failed to seed listing %q: %v", l.title, err)
		}
		fmt.Printf("seeded listing: id=%s title=%q location=%q\n", listingID, l.title, l.location)
	}
}
