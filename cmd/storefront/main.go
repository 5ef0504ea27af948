package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/mmcdole/storefront/internal/adapter"
	"github.com/mmcdole/storefront/internal/adapter/source"
	"github.com/mmcdole/storefront/internal/catalog"
	"github.com/mmcdole/storefront/internal/favorites"
	"github.com/mmcdole/storefront/internal/products"
	"github.com/mmcdole/storefront/internal/session"
	"github.com/mmcdole/storefront/internal/store"
	"github.com/mmcdole/storefront/internal/tui"
	"github.com/mmcdole/storefront/internal/tui/components"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

type flags struct {
	version    bool
	login      bool
	logout     bool
	clearCache bool
	check      bool
}

func main() {
	var f flags
	flag.BoolVar(&f.version, "v", false, "print version")
	flag.BoolVar(&f.version, "version", false, "print version")
	flag.BoolVar(&f.login, "login", false, "log in from the terminal and exit")
	flag.BoolVar(&f.logout, "logout", false, "end the saved session and exit")
	flag.BoolVar(&f.clearCache, "clear-cache", false, "drop cached categories (favorites and session are kept)")
	flag.BoolVar(&f.check, "check", false, "check the catalog server is reachable and exit")
	flag.Parse()

	if f.version {
		fmt.Printf("storefront %s\n", Version)
		return
	}

	if err := run(f); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(f flags) error {
	// Load configuration
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, closer, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	} else {
		defer closer.Close()
	}
	slog.SetDefault(logger)

	logger.Info("starting storefront", "version", Version, "server", cfg.Server.URL)

	st, err := store.NewLocalStore(cfg.Storage.Dir, cfg.Server.URL)
	if err != nil {
		return fmt.Errorf("failed to open local store: %w", err)
	}
	defer st.Close()

	if f.clearCache {
		if err := st.InvalidateCache(); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		fmt.Println("✓ Cached categories cleared")
		return nil
	}

	sessionSvc := session.NewService(st, session.Options{
		Theme:            cfg.UI.Theme,
		DetectBackground: lipgloss.HasDarkBackground,
	}, logger)

	switch {
	case f.login:
		return runLogin(sessionSvc)
	case f.logout:
		if err := sessionSvc.Logout(); err != nil {
			return fmt.Errorf("logout failed: %w", err)
		}
		fmt.Println("✓ Logged out")
		return nil
	}

	// Create catalog client
	client, err := source.NewClientFromConfig(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create catalog client: %w", err)
	}

	if f.check {
		return checkServerWithSpinner(client, cfg.Server.URL)
	}

	// Create services
	services := tui.Services{
		Catalog:    catalog.NewSync(client, cfg.Catalog.PageSize, logger),
		Categories: catalog.NewCategories(client, st, logger),
		Favorites:  favorites.NewService(st, logger),
		Session:    sessionSvc,
		Products:   products.NewService(client, sessionSvc, logger),
	}

	// Create TUI model
	model := tui.NewModel(services, tui.Options{
		SearchDebounce:    cfg.Catalog.SearchDebounce,
		PrefetchThreshold: cfg.Catalog.PrefetchThreshold,
	})

	// Run the TUI
	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runLogin prompts for credentials on the terminal
func runLogin(sessionSvc *session.Service) error {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Email: ")
	email, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	fmt.Print("Password: ")
	var password string
	if term.IsTerminal(int(os.Stdin.Fd())) {
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = string(raw)
	} else {
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = line
	}

	user, err := sessionSvc.Login(strings.TrimSpace(email), strings.TrimSpace(password))
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	fmt.Printf("✓ Logged in as %s\n", user.Name)
	return nil
}

// checkServerWithSpinner pings the catalog with a visual spinner
func checkServerWithSpinner(client source.CatalogSource, serverURL string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	resultCh := make(chan error, 1)
	go func() {
		resultCh <- client.Ping(ctx)
	}()

	frames := components.SpinnerFrames
	frame := 0
	fmt.Printf("\r%s Contacting %s...", frames[frame], serverURL)

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case err := <-resultCh:
			fmt.Print(clearSpinnerLine)
			if err != nil {
				return fmt.Errorf("catalog unreachable: %w", err)
			}
			fmt.Printf("✓ %s is reachable\n", serverURL)
			return nil

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Contacting %s...", frames[frame%len(frames)], serverURL)

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return fmt.Errorf("check timed out")
		}
	}
}
