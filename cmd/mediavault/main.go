package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"mediavault/internal/cli"
)

func main() {
	// Optional .env for MEDIAVAULT_CONFIG and friends; absence is fine.
	_ = godotenv.Load(".env")

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
