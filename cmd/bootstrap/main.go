// Package main 数据库初始化入口
package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"pagesmith-ai-api/internal/config"
	"pagesmith-ai-api/internal/domain/entity"
	"pagesmith-ai-api/internal/infrastructure/persistence/postgres"
)

func main() {
	_ = godotenv.Load()

	fmt.Println("Starting database bootstrap...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	client, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer client.Close()

	fmt.Println("Running migrations...")
	if err := client.DB().AutoMigrate(&entity.GenerationUsageEvent{}); err != nil {
		log.Fatalf("failed to migrate generation usage events: %v", err)
	}

	fmt.Println("Bootstrap completed.")
}
