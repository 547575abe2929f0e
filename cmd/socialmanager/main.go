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
		err = runServe(os.Args[2:])
	case "render":
		err = runRender(os.Args[2:], os.Stdout)
	case "version":
		fmt.Printf("socialmanager %s\n", version)
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
	fmt.Println(`socialmanager - a blog engine that adds social share buttons to every post

Usage:
  socialmanager <command> [arguments]

Commands:
  serve             Run the blog server (configured from the environment)
  render [flags]    Insert share buttons into an HTML or Markdown file
  version           Print the socialmanager version
  help              Show this help message

Examples:
  socialmanager serve
  socialmanager render -in post.md -title "Hello" -url https://example.com/blog/hello/`)
}
