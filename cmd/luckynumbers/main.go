package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/bytedance/sonic"
	"github.com/joho/godotenv"
	config "github.com/maheshrc27/dreamwall/configs"
	"github.com/maheshrc27/dreamwall/internal/database"
	"github.com/maheshrc27/dreamwall/internal/repository"
	"github.com/maheshrc27/dreamwall/internal/service"
	"github.com/maheshrc27/dreamwall/pkg/logger"
	"go.uber.org/zap"
)

const usage = `usage: luckynumbers <command> [flags]

commands:
  verify              report missing numbers, duplicates and sequence breaks
  backfill [-dry-run] renumber posts 001..999 in creation order
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	os.Exit(run(os.Args[1], os.Args[2:]))
}

func run(cmd string, args []string) int {
	var dryRun bool
	switch cmd {
	case "verify":
	case "backfill":
		fs := flag.NewFlagSet("backfill", flag.ContinueOnError)
		fs.BoolVar(&dryRun, "dry-run", false, "print the changes without writing them")
		if err := fs.Parse(args); err != nil {
			return 2
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		return 2
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()
	if err := logger.Init(cfg.LogLevel, true); err != nil {
		log.Printf("failed to build logger: %v", err)
		return 1
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	db, err := database.Open(ctx, cfg.PostgresURI)
	if err != nil {
		logger.Error("failed to connect to database", zap.Error(err))
		return 1
	}
	defer db.Close()

	lucky := service.NewLuckyNumberService(db, repository.NewPostRepository(db), repository.NewCounterRepository(db))

	if cmd == "verify" {
		return verify(ctx, lucky)
	}
	if err := backfill(ctx, lucky, dryRun); err != nil {
		logger.Error("backfill failed", zap.Error(err))
		return 1
	}
	return 0
}

// verify prints the audit as JSON and exits non-zero when it is unhealthy.
func verify(ctx context.Context, lucky service.LuckyNumberService) int {
	audit, err := lucky.Verify(ctx)
	if err != nil {
		logger.Error("verify failed", zap.Error(err))
		return 1
	}

	out, err := sonic.ConfigStd.MarshalIndent(audit, "", "  ")
	if err != nil {
		logger.Error("encode audit", zap.Error(err))
		return 1
	}
	fmt.Println(string(out))

	if !audit.Healthy() {
		return 1
	}
	return 0
}

func backfill(ctx context.Context, lucky service.LuckyNumberService, dryRun bool) error {
	plan, err := lucky.Backfill(ctx, dryRun)
	if err != nil {
		return err
	}

	for _, a := range plan {
		from := a.From
		if from == "" {
			from = "---"
		}
		fmt.Printf("post %d: %s -> %s\n", a.ID, from, a.To)
	}

	switch {
	case len(plan) == 0:
		fmt.Println("All posts already numbered in order.")
	case dryRun:
		fmt.Printf("%d posts would change (dry run, nothing written).\n", len(plan))
	default:
		fmt.Printf("%d posts updated.\n", len(plan))
	}
	return nil
}
