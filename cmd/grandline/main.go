// Command grandline runs a scripted demo session of the social-graph state
// engine: it restores any persisted state, seeds the demo crew when empty,
// plays through a handful of mutations, and prints the first feed pages.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"grandline/internal/activity"
	"grandline/internal/config"
	"grandline/internal/feed"
	"grandline/internal/kv"
	"grandline/internal/models"
	"grandline/internal/observability"
	"grandline/internal/persist"
	"grandline/internal/seed"
	"grandline/internal/store"
)

func main() {
	extraPosts := flag.Int("extra-posts", 0, "Number of random filler posts to seed")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := observability.NewDefaultLogger()
	ctx := context.Background()

	backend, err := openBackend(cfg)
	if err != nil {
		log.Fatalf("Failed to open %s backend: %v", cfg.StorageBackend, err)
	}

	mirror := persist.NewMirror(backend, logger)
	activities := activity.NewLog()
	engine := store.New(store.Options{Mirror: mirror, Logger: logger})

	engine.Subscribe(func(e store.Event) {
		logger.Debug("store event", "kind", string(e.Kind), "user_id", e.UserID, "post_id", e.PostID)
	})

	if err := persist.Load(ctx, mirror, engine); err != nil {
		log.Fatalf("Failed to restore persisted state: %v", err)
	}

	if cfg.SaveEnabled && !mirror.Enabled() {
		if err := mirror.SetEnabled(ctx, true); err != nil {
			log.Fatalf("Failed to enable saving: %v", err)
		}
	}

	if len(engine.Users()) == 0 && cfg.SeedDemoData {
		logger.Info("seeding demo data")
		if err := seed.Demo(ctx, engine, activities, seed.Options{ExtraPosts: *extraPosts}); err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
	}

	if err := session(ctx, engine, activities); err != nil {
		log.Fatalf("Demo session failed: %v", err)
	}

	printFeed(engine, cfg.PageSize)
	printActivities(activities)
}

func openBackend(cfg *config.Config) (kv.Store, error) {
	switch cfg.StorageBackend {
	case config.StorageSQLite:
		return kv.OpenSQLite(cfg.SQLitePath)
	case config.StoragePostgres:
		return kv.OpenPostgres(cfg.PostgresDSN)
	case config.StorageRedis:
		return kv.NewRedis(cfg.RedisURL)
	default:
		return kv.NewMemory(), nil
	}
}

// session plays the part of a browser tab: log in, post, interact, log out.
func session(ctx context.Context, engine *store.Store, activities *activity.Log) error {
	user, err := engine.Login(ctx, "monkey_d_luffy", seed.DemoPassword)
	if err != nil {
		return err
	}

	post := models.NewPost(models.PostInput{
		UserID:  user.ID,
		Content: "Setting sail again! ⛵",
	})
	if err := engine.AddPost(ctx, post); err != nil {
		return err
	}
	activities.Add(user.Username, models.ActionPostCreate)

	for _, other := range engine.Users() {
		if other.ID == user.ID {
			continue
		}
		post.Like(other.ID)
	}
	comment := post.AddComment(user.ID, "Who's coming along?")
	comment.AddReply(user.ID, "Everyone, of course!")
	if err := engine.UpdatePost(ctx, post); err != nil {
		return err
	}
	activities.Add(user.Username, models.ActionCommentCreate)

	return engine.Logout(ctx)
}

func printFeed(engine *store.Store, pageSize int) {
	posts := engine.Posts()
	pager := feed.NewPager(posts, func(p *models.Post) string { return p.ID },
		feed.WithPageSize(pageSize))

	fmt.Println("=== Feed ===")
	for _, post := range pager.View() {
		author := "unknown"
		if user, ok := engine.User(post.UserID); ok {
			author = user.Username
		}
		fmt.Printf("[%s] %s (%s likes, %s comments)\n",
			author, post.Content,
			feed.MetricCount(len(post.Likes), 0),
			feed.MetricCount(len(post.Comments), 0))
	}
}

func printActivities(activities *activity.Log) {
	fmt.Println("=== Recent activity ===")
	for _, entry := range activities.All() {
		fmt.Printf("%s %s\n", entry.Username, entry.Action)
	}
}
