package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// version will be set at build time via -ldflags
var version = "dev"

func main() {
	// Load .env file if it exists (optional, won't error if missing)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load .env file: %v", err)
	}

	rootCmd := newRootCmd()

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		rootCmd.SetArgs([]string{"serve"})
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
