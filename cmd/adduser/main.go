// cmd/adduser/main.go
// Creates or updates a league member in the database.
//
// Usage:
//
//	go run ./cmd/adduser -username luca -password testing -admin
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/lucamueller/f1tipp/config"
	bundb "github.com/lucamueller/f1tipp/db"
	"github.com/lucamueller/f1tipp/models"
)

func main() {
	username := flag.String("username", "", "username (required)")
	password := flag.String("password", "", "plain-text password (required)")
	display := flag.String("display", "", "display name (defaults to username)")
	admin := flag.Bool("admin", false, "grant the admin role")
	flag.Parse()

	if *username == "" || *password == "" {
		log.Fatal("both -username and -password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("bcrypt:", err)
	}

	cfg := config.Load()
	db := bundb.Setup(cfg)
	defer db.Close()

	role := models.RolePlayer
	if *admin || cfg.IsAdmin(*username) {
		role = models.RoleAdmin
	}

	user := &models.User{
		Username:    *username,
		Password:    string(hash),
		Role:        role,
		DisplayName: *display,
	}
	if user.DisplayName == "" {
		user.DisplayName = user.Username
	}

	_, err = db.NewInsert().Model(user).
		On("CONFLICT (username) DO UPDATE SET password = EXCLUDED.password, role = EXCLUDED.role, display_name = EXCLUDED.display_name").
		Exec(context.Background())
	if err != nil {
		log.Fatal("insert user:", err)
	}

	fmt.Printf("user %q saved with role %s\n", *username, role)
}
