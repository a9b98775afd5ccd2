package main

import (
	"context"

	"github.com/joho/godotenv"

	"github.com/reqhiem/website/cmd"
)

func main() {
	// optional: tokens and API keys can live in a local .env file
	_ = godotenv.Load()
	cmd.Run(context.Background())
}
