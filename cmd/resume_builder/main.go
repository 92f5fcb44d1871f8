// Package main provides the resume_builder command line tool and REST server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configFile string
	storeFlag  string
	storePath  string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "resume_builder",
	Short: "Resume builder with live templates, AI assist and PDF export",
	Long: "resume_builder edits a single resume document, renders it with one of nine templates, " +
		"exports it to PDF and drafts content with Gemini. Run 'serve' for the REST API.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", "", "Store backend: file, memory, postgres or redis")
	rootCmd.PersistentFlags().StringVar(&storePath, "store-path", "", "Directory of the file store")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
