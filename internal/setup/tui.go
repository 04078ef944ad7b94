// Package setup provides the interactive first-run configuration wizard.
package setup

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mkrasov/folio/config"
	"github.com/mkrasov/folio/internal/domain"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)
)

// RunTUI launches the terminal configuration wizard and writes the config
// file at path.
func RunTUI(path string) error {
	var (
		apiKey    string
		apiSecret string
		dataDir   string
		quotesStr string
		startStr  string
		listen    string
		confirm   bool
	)

	// defaults
	dataDir = "data"
	quotesStr = strings.Join(domain.DefaultQuoteAssets, ",")
	startStr = "2017-01-01"
	listen = ":8087"

	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("FOLIO CONFIG WIZARD"))
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("Reconstruct your Binance portfolio history.\n"))

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Binance API Key").
				Value(&apiKey).
				Validate(notEmpty("API key")),
			huh.NewInput().
				Title("Binance API Secret").
				EchoMode(huh.EchoModePassword).
				Value(&apiSecret).
				Validate(notEmpty("API secret")),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Data directory").
				Description("Where the trade ledger and caches live").
				Value(&dataDir).
				Validate(notEmpty("data directory")),
			huh.NewInput().
				Title("Quote assets").
				Description("Comma-separated (e.g. USDT,USDC,BUSD)").
				Value(&quotesStr).
				Validate(notEmpty("quote assets")),
			huh.NewInput().
				Title("History start date").
				Description("Fetch trades from this date (YYYY-MM-DD)").
				Value(&startStr).
				Validate(func(s string) error {
					_, err := time.Parse("2006-01-02", s)
					return err
				}),
			huh.NewInput().
				Title("Dashboard address").
				Value(&listen),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Write config?").
				Description(path).
				Value(&confirm),
		),
	).Run()
	if err != nil {
		return err
	}
	if !confirm {
		return fmt.Errorf("setup aborted")
	}

	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return err
	}

	var quotes []string
	for _, q := range strings.Split(quotesStr, ",") {
		if q = strings.ToUpper(strings.TrimSpace(q)); q != "" {
			quotes = append(quotes, q)
		}
	}

	cfg := config.Config{
		APIKey:      apiKey,
		APISecret:   apiSecret,
		DataDir:     dataDir,
		QuoteAssets: quotes,
		Start:       start,
		Listen:      listen,
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}

	fmt.Println(lipgloss.NewStyle().Foreground(highlight).Render("Config written to " + path))
	return nil
}

func notEmpty(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", what)
		}
		return nil
	}
}
