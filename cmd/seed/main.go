package main

import (
	"github.com/joho/godotenv"

	"blogapi/internal/config"
	"blogapi/internal/database"
	"blogapi/internal/domain"
	"blogapi/internal/pkg/logger"
	"blogapi/internal/pkg/password"
)

// Seeds the schema and a small demo data set. Passwords satisfy the
// registration policy and are stored hashed, like every other account.
func main() {
	_ = godotenv.Load()

	log := logger.New("seed")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}

	log.Info().Msg("running AutoMigrate")
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}

	adminHash, err := password.Hash("Adm1n-Seed-Pass")
	if err != nil {
		log.Fatal().Err(err).Msg("hash failed")
	}
	userHash, err := password.Hash("Us3r-Seed-Pass")
	if err != nil {
		log.Fatal().Err(err).Msg("hash failed")
	}

	admin := domain.User{Username: "admin", Email: "admin@blog.local", PasswordHash: adminHash, Role: domain.RoleAdmin}
	if err := db.Where("username = ?", admin.Username).FirstOrCreate(&admin).Error; err != nil {
		log.Fatal().Err(err).Msg("seed admin failed")
	}

	alice := domain.User{Username: "alice", Email: "alice@blog.local", PasswordHash: userHash, Role: domain.RoleUser}
	if err := db.Where("username = ?", alice.Username).FirstOrCreate(&alice).Error; err != nil {
		log.Fatal().Err(err).Msg("seed user failed")
	}

	posts := []domain.Post{
		{Title: "Welcome to the blog", Content: "This is the first post.", OwnerID: admin.ID, Visibility: domain.VisibilityPublic},
		{Title: "Private thoughts", Content: "Visible to alice and admins only.", OwnerID: alice.ID, Visibility: domain.VisibilityPrivate},
		{Title: "Public announcement", Content: "Important news.", OwnerID: admin.ID, Visibility: domain.VisibilityPublic},
	}
	for i := range posts {
		if err := db.Where("title = ? AND owner_id = ?", posts[i].Title, posts[i].OwnerID).FirstOrCreate(&posts[i]).Error; err != nil {
			log.Fatal().Err(err).Msg("seed post failed")
		}
	}

	log.Info().Int64("admin_id", admin.ID).Int64("user_id", alice.ID).Msg("seed completed")
}
