// Package setup provides an interactive terminal wizard that generates a yaml
// configuration file for the engine.
package setup

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/papertrade/papertrade/config"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true).
			MarginTop(1).
			MarginBottom(0)
)

// RunTUI launches the terminal configuration wizard and writes the result to
// config.gen.yaml.
func RunTUI() error {
	var (
		balanceStr  string
		riskLevel   string
		intervalStr string
		webAddr     string
		confirm     bool
	)

	// defaults
	balanceStr = "25000"
	intervalStr = "3s"
	webAddr = config.DefaultWebAddr

	fmt.Print("\033[H\033[2J") // Clear screen
	fmt.Println(headerStyle.Render("PAPERTRADE CONFIG WIZARD"))
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("Set up your simulated trading desk.\n"))

	fmt.Println(stepStyle.Render("STEP 1: ACCOUNT"))
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Starting Cash Balance").
				Description("Demo account cash in account currency (e.g. 25000)").
				Value(&balanceStr).
				Validate(func(s string) error {
					balance, err := decimal.NewFromString(s)
					if err != nil {
						return fmt.Errorf("invalid number: %s", s)
					}
					if balance.IsNegative() {
						return fmt.Errorf("balance must not be negative")
					}
					return nil
				}),
		),
	).Run()
	if err != nil {
		return err
	}

	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("PAPERTRADE CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 2: RISK TOLERANCE"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Default advisor risk tolerance").
				Options(
					huh.NewOption("Low", "Low"),
					huh.NewOption("Medium", "Medium"),
					huh.NewOption("High", "High"),
				).
				Value(&riskLevel),
		),
	).Run()
	if err != nil {
		return err
	}

	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("PAPERTRADE CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 3: TIMING"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Quote Refresh Interval").
				Description("Duration string (e.g. 3s, 5s)").
				Value(&intervalStr).
				Validate(func(s string) error {
					_, err := time.ParseDuration(s)
					return err
				}),
			huh.NewInput().
				Title("Dashboard Listen Address").
				Description("host:port (e.g. :8080)").
				Value(&webAddr),
		),
	).Run()
	if err != nil {
		return err
	}

	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("PAPERTRADE CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("FINAL CONFIRMATION"))

	summary := fmt.Sprintf(
		"Balance: %s\nRisk: %s\nInterval: %s\nDashboard: %s\n",
		balanceStr, riskLevel, intervalStr, webAddr,
	)
	fmt.Println(lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1).Render(summary))

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save Configuration?").
				Affirmative("Yes, save and start").
				Negative("No, exit").
				Value(&confirm),
		),
	).Run()
	if err != nil {
		return err
	}

	if !confirm {
		return fmt.Errorf("setup cancelled by user")
	}

	interval, _ := time.ParseDuration(intervalStr)

	cfgTmp := config.ConfigTmp{
		Balance:           balanceStr,
		RiskLevel:         riskLevel,
		PollPriceInterval: interval,
		WebAddr:           webAddr,
	}

	data, err := yaml.Marshal(cfgTmp)
	if err != nil {
		return fmt.Errorf("failed to generate yaml: %w", err)
	}

	filename := "config.gen.yaml"
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to save config file: %w", err)
	}

	fmt.Println(lipgloss.NewStyle().Foreground(special).Render("Saved " + filename))
	return nil
}
