package seeder

import (
	"context"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"talentsift/internal/database"
)

// AdminSeeder creates the first recruiter account when SEED_ADMIN_EMAIL and
// SEED_ADMIN_PASSWORD are set. Without them it is a no-op and accounts come
// in through the registration endpoint.
type AdminSeeder struct{}

func (AdminSeeder) Name() string { return "admin_user" }

func (AdminSeeder) Run(ctx context.Context, db database.DB) error {
	email := strings.TrimSpace(os.Getenv("SEED_ADMIN_EMAIL"))
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	if err := EnsureTableColumns(ctx, db, "users", "id", "email", "name", "password_hash", "created_at", "updated_at"); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = db.Exec(
		ctx,
		`INSERT INTO users (id, email, name, password_hash) VALUES (gen_random_uuid(), $1, $2, $3) ON CONFLICT (email) DO NOTHING`,
		email,
		"Admin",
		string(hash),
	)
	return err
}
