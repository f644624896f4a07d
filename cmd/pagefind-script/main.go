package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"pagefind/internal/config"
	"pagefind/internal/document"
	"pagefind/internal/findhost"
	"pagefind/internal/matcher"
	"pagefind/internal/script"
)

func main() {
	var docPath, scriptPath, configPath string
	var regex, caseSensitive, verbose bool
	flag.StringVar(&docPath, "doc", "", "Document to search")
	flag.StringVar(&scriptPath, "script", "", "Script file (default: stdin)")
	flag.StringVar(&configPath, "config", "", "Path to a config file")
	flag.BoolVar(&regex, "regex", false, "Treat queries as regular expressions")
	flag.BoolVar(&caseSensitive, "case", false, "Match case")
	flag.BoolVar(&verbose, "v", false, "Log to stderr")
	flag.Parse()

	if !verbose {
		log.SetOutput(io.Discard)
	}

	if err := run(docPath, scriptPath, configPath, regex, caseSensitive); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(docPath, scriptPath, configPath string, regex, caseSensitive bool) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	cfg := config.DefaultConfig()
	if configPath != "" {
		loaded, err := config.NewConfigService().LoadFromPath(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if regex {
		cfg.Find.Engine = matcher.EngineRegex
	}
	if caseSensitive {
		cfg.Find.CaseSensitive = true
	}
	m, err := cfg.NewMatcher()
	if err != nil {
		return err
	}

	var in io.Reader = os.Stdin
	if scriptPath != "" {
		f, err := os.Open(scriptPath)
		if err != nil {
			return fmt.Errorf("failed to open script: %w", err)
		}
		defer f.Close()
		in = f
	}
	cmds, err := script.Parse(in)
	if err != nil {
		return err
	}

	host := findhost.New(findhost.Options{Matcher: m, QueueSize: cfg.Find.QueueSize}, nil)
	defer host.Close()

	if docPath != "" {
		doc, err := document.Load(docPath)
		if err != nil {
			return err
		}
		if err := host.LoadDocument(ctx, doc); err != nil {
			return err
		}
	}

	return script.Run(ctx, host, cmds, os.Stdout)
}
