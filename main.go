package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"pagefind/internal/config"
	"pagefind/internal/document"
	"pagefind/internal/domain"
	"pagefind/internal/eventbus"
	"pagefind/internal/findhost"
	"pagefind/internal/matcher"
	"pagefind/internal/ui"
)

func main() {
	var configPath, logPath string
	var regex, caseSensitive, saveConfig bool
	flag.StringVar(&configPath, "config", "", "Path to a config file (default: ./"+config.FileName+" or the user config)")
	flag.StringVar(&logPath, "log", "pagefind.log", "Log file")
	flag.BoolVar(&regex, "regex", false, "Treat queries as regular expressions")
	flag.BoolVar(&caseSensitive, "case", false, "Match case")
	flag.BoolVar(&saveConfig, "save-config", false, "Write the resolved settings to the user config file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] FILE\n       %s -save-config [flags]\n", os.Args[0], os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() > 1 || (flag.NArg() == 0 && !saveConfig) {
		flag.Usage()
		os.Exit(2)
	}

	// Set up logging
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	bus := eventbus.New()
	defer bus.Close()
	bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) {
		log.Printf("Config saved to %s", e.(eventbus.ConfigSavedEvent).Path)
	})

	configSvc := config.NewConfigServiceWithBus(bus)
	cfg := loadConfig(configSvc, configPath)
	if regex {
		cfg.Find.Engine = matcher.EngineRegex
	}
	if caseSensitive {
		cfg.Find.CaseSensitive = true
	}
	if saveConfig {
		if err := configSvc.Save(cfg); err != nil {
			fmt.Printf("Error saving config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Saved config to %s\n", configSvc.Path())
		if flag.NArg() == 0 {
			return
		}
	}

	docPath, err := filepath.Abs(flag.Arg(0))
	if err != nil {
		fmt.Printf("Error resolving path: %v\n", err)
		os.Exit(1)
	}

	m, err := cfg.NewMatcher()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	doc, err := document.Load(docPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	host := findhost.New(findhost.Options{Matcher: m, QueueSize: cfg.Find.QueueSize}, bus)
	defer host.Close()
	if err := host.LoadDocument(ctx, doc); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	uiModel := ui.NewModel(host, cfg, doc, func() (*domain.Document, error) {
		return document.Load(docPath)
	})
	p := tea.NewProgram(uiModel, tea.WithAltScreen())

	// Results flow back into the UI loop in request order. The relay keeps the
	// host worker running while Update is blocked submitting to a full queue.
	relay := ui.NewRelay(p.Send)
	defer relay.Close()
	host.SetFindListener(relay.FindListener)
	bus.Subscribe(eventbus.EventError, relay.EventHandler)

	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	log.Printf("Starting UI for %s", docPath)
	if _, err := p.Run(); err != nil {
		log.Printf("Error running program: %v", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	host.SetFindListener(nil)
	log.Printf("UI exited normally")
}

// loadConfig prefers an explicit path, then ./.pagefind.toml, then the user config
func loadConfig(configSvc config.ConfigService, explicit string) *config.Config {
	if explicit != "" {
		cfg, err := configSvc.LoadFromPath(explicit)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		return cfg
	}

	if _, err := os.Stat(config.FileName); err == nil {
		cfg, err := configSvc.LoadFromPath(config.FileName)
		if err == nil {
			log.Printf("Loaded config from %s", config.FileName)
			return cfg
		}
		log.Printf("Ignoring %s: %v", config.FileName, err)
	}

	cfg, err := configSvc.Load()
	if err != nil {
		log.Printf("Error loading config: %v", err)
		return config.DefaultConfig()
	}
	return cfg
}
