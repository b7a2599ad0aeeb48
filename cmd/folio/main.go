package main

import (
	"fmt"
	"os"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe()
	case "list":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: folio list <blog|work>")
			os.Exit(1)
		}
		err = runList(os.Stdout, os.Args[2])
	case "images":
		err = runImages(os.Stdout)
	case "version":
		fmt.Printf("folio %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`folio - A portfolio content service built with Go, Echo, and templ

Usage:
  folio <command> [arguments]

Commands:
  serve            Start the HTTP server
  list <blog|work> Print the catalog of a collection
  images           Print the image library
  version          Print the folio version
  help             Show this help message

Configuration is read from the environment and an optional .env file:
  ADDR, SITE_NAME, BLOG_DIR, WORK_DIR, PUBLIC_DIR, ADMIN_PASSWORD,
  SESSION_SECRET, COOKIE_SECURE, AUTH_MODE, ACTIVITY_DB, LOG_LEVEL, LOG_FORMAT`)
}
