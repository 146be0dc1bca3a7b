package main

import (
	"context"
	"log"
	"os"

	"agriconnect/internal/config"
	"agriconnect/internal/kv"
	"agriconnect/internal/seed"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	store, closeStore, err := kv.Open(ctx, cfg.KVBackend, cfg.DBConnString, cfg.RedisAddr, cfg.KVNamespace)
	if err != nil {
		logger.Fatalf("open %s kv store: %v", cfg.KVBackend, err)
	}
	defer closeStore()

	if err := seed.Apply(ctx, store); err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Println("catalog seeded")
}
