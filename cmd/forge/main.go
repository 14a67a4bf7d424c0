package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/theapple1234/magecraft-forge/internal/config"
	"github.com/theapple1234/magecraft-forge/internal/domain/shared"
	"github.com/theapple1234/magecraft-forge/internal/repositories/builds"
	"github.com/theapple1234/magecraft-forge/internal/services/builder"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: forge <command> [args]

Commands:
  list <type>                    list stored builds of a type
  usages <type> <name>           list everything referencing a build
  rename <type> <old> <new>      rename a build and rewrite its references
  delete <type> <name>           delete a build (references stay behind)
  export <type> <name>           write a bundled export to stdout
  import <file>                  restore builds from an export file

Types: companion, weapon, beast, vehicle`)
	os.Exit(2)
}

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	flag.Usage = usage
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		usage()
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	repo, cleanup, err := openRepository(cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer cleanup()

	svc, err := builder.NewService(&builder.ServiceConfig{Repository: repo})
	if err != nil {
		log.Fatalf("Failed to create service: %v", err)
	}

	ctx := context.Background()
	if err := run(ctx, svc, args); err != nil {
		log.Fatalf("%v", err)
	}
}

func openRepository(cfg *config.Config) (builds.Repository, func(), error) {
	switch cfg.Store {
	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Redis.Addr, err)
		}
		log.Printf("Using Redis at %s", cfg.Redis.Addr)

		cleanup := func() {
			if err := client.Close(); err != nil {
				log.Printf("Error closing Redis connection: %v", err)
			}
		}
		return builds.NewRedis(client), cleanup, nil

	case config.StoreSQLite:
		repo, err := builds.OpenSQLite(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("Using SQLite at %s", cfg.SQLite.Path)

		cleanup := func() {
			if err := repo.Close(); err != nil {
				log.Printf("Error closing SQLite store: %v", err)
			}
		}
		return repo, cleanup, nil

	default:
		log.Println("Using in-memory store (state is lost on exit)")
		return builds.NewInMemoryRepository(), func() {}, nil
	}
}

func run(ctx context.Context, svc builder.Service, args []string) error {
	switch args[0] {
	case "list":
		if len(args) != 2 {
			usage()
		}
		return listBuilds(ctx, svc, shared.BuildType(args[1]))
	case "usages":
		if len(args) != 3 {
			usage()
		}
		return listUsages(ctx, svc, shared.BuildType(args[1]), args[2])
	case "rename":
		if len(args) != 4 {
			usage()
		}
		if err := svc.RenameBuild(ctx, shared.BuildType(args[1]), args[2], args[3]); err != nil {
			return err
		}
		fmt.Printf("Renamed %s '%s' to '%s'\n", args[1], args[2], args[3])
		return nil
	case "delete":
		if len(args) != 3 {
			usage()
		}
		return deleteBuild(ctx, svc, shared.BuildType(args[1]), args[2])
	case "export":
		if len(args) != 3 {
			usage()
		}
		return exportBuild(ctx, svc, shared.BuildType(args[1]), args[2])
	case "import":
		if len(args) != 2 {
			usage()
		}
		return importFile(ctx, svc, args[1])
	default:
		usage()
		return nil
	}
}

func listBuilds(ctx context.Context, svc builder.Service, t shared.BuildType) error {
	all, err := svc.ListBuilds(ctx, t)
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Printf("No %s builds stored\n", t)
		return nil
	}
	for _, b := range all {
		fmt.Printf("%-30s v%d\n", b.Name, b.Version)
	}
	return nil
}

func listUsages(ctx context.Context, svc builder.Service, t shared.BuildType, name string) error {
	usages, err := svc.FindUsages(ctx, t, name)
	if err != nil {
		return err
	}
	if len(usages) == 0 {
		fmt.Printf("Nothing references %s '%s'\n", t, name)
		return nil
	}
	for _, u := range usages {
		fmt.Println(u.Description)
	}
	return nil
}

func deleteBuild(ctx context.Context, svc builder.Service, t shared.BuildType, name string) error {
	usages, err := svc.FindUsages(ctx, t, name)
	if err != nil {
		return err
	}
	for _, u := range usages {
		log.Printf("Warning: still referenced: %s", u.Description)
	}
	if err := svc.DeleteBuild(ctx, t, name); err != nil {
		return err
	}
	fmt.Printf("Deleted %s '%s'\n", t, name)
	return nil
}

func exportBuild(ctx context.Context, svc builder.Service, t shared.BuildType, name string) error {
	export, err := svc.ExportBuild(ctx, t, name)
	if err != nil {
		return err
	}
	raw, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	fmt.Println(string(raw))
	return nil
}

func importFile(ctx context.Context, svc builder.Service, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	result, err := svc.Import(ctx, raw)
	if err != nil {
		return err
	}
	for _, ref := range result.Imported {
		fmt.Printf("Imported %s '%s'\n", ref.Type, ref.Name)
	}
	return nil
}
