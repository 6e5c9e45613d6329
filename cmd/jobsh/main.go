package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"jobsh/internal/config"
	"jobsh/internal/shell"
)

func main() {
	var (
		help       = pflag.BoolP("help", "h", false, "print this message")
		verbose    = pflag.BoolP("verbose", "v", false, "print additional diagnostic information")
		noPrompt   = pflag.BoolP("no-prompt", "p", false, "do not emit a command prompt")
		configFile = pflag.String("config", "config.yml", "path to an optional config file")
	)
	pflag.Usage = usage
	pflag.Parse()

	if *help {
		usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *verbose {
		cfg.Verbose = true
	}
	if *noPrompt {
		// Handy for automatic testing.
		cfg.Prompt = ""
	}

	s, err := shell.New(cfg)
	if err != nil {
		fmt.Printf("Error initializing shell: %v\n", err)
		os.Exit(1)
	}

	s.Run()
}

func usage() {
	fmt.Println("Usage: jobsh [-hvp]")
	fmt.Println("   -h   print this message")
	fmt.Println("   -v   print additional diagnostic information")
	fmt.Println("   -p   do not emit a command prompt")
}
