package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"

	_ "github.com/lib/pq"

	"louercar-backend/internal/config"
	"louercar-backend/internal/domain"
	"louercar-backend/internal/logger"
	"louercar-backend/internal/repository/postgres"
)

// seedTags are the role tags the application expects to exist.
var seedTags = []domain.Tag{
	{Name: domain.TagNewClient, Color: "#2e86de", Icon: "user-plus", Description: "Clients who just joined the platform"},
	{Name: domain.TagVIPClient, Color: "#f1c40f", Icon: "star", Description: "Clients with preferential treatment"},
	{Name: domain.TagEmployee, Color: "#27ae60", Icon: "briefcase", Description: "Staff members"},
	{Name: domain.TagAdministrator, Color: "#c0392b", Icon: "shield", Description: "Platform administrators"},
}

// seedGroups maps a default discussion group to each client-facing tag.
var seedGroups = []struct {
	Name        string
	Description string
	TagName     string
}{
	{"Newcomers Lounge", "Welcome space for new clients", domain.TagNewClient},
	{"VIP Club", "Exclusive offers and early access", domain.TagVIPClient},
	{"Staff Room", "Internal staff coordination", domain.TagEmployee},
}

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Seeding base tags and groups...")

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	store := postgres.NewStore(db)
	ctx := context.Background()

	created, existing := 0, 0
	tagIDs := make(map[string]int32)

	for _, seed := range seedTags {
		tag, err := store.TagRepository.GetByName(ctx, seed.Name)
		if err == nil {
			tagIDs[tag.Name] = tag.ID
			existing++
			logger.Info("Tag already present", "name", tag.Name)
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			log.Fatalf("Failed to look up tag %q: %v", seed.Name, err)
		}

		tag = &domain.Tag{Name: seed.Name, Color: seed.Color, Icon: seed.Icon, Description: seed.Description}
		if err := store.TagRepository.Create(ctx, tag); err != nil {
			log.Fatalf("Failed to create tag %q: %v", seed.Name, err)
		}
		tagIDs[tag.Name] = tag.ID
		created++
		logger.Info("Tag created", "name", tag.Name)
	}

	groups, err := store.GroupRepository.List(ctx)
	if err != nil {
		log.Fatalf("Failed to list groups: %v", err)
	}
	have := make(map[string]bool, len(groups))
	for _, g := range groups {
		have[g.Name] = true
	}

	for _, seed := range seedGroups {
		if have[seed.Name] {
			existing++
			logger.Info("Group already present", "name", seed.Name)
			continue
		}

		tagID := tagIDs[seed.TagName]
		group := &domain.Group{Name: seed.Name, Description: seed.Description, TagID: &tagID}
		if err := store.GroupRepository.Create(ctx, group); err != nil {
			log.Fatalf("Failed to create group %q: %v", seed.Name, err)
		}
		created++
		logger.Info("Group created", "name", seed.Name, "tag", seed.TagName)
	}

	logger.Info("Seeding finished", "created", created, "already_present", existing)
}
