package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/l1jgo/asteroids/internal/component"
	"github.com/l1jgo/asteroids/internal/game"
	"github.com/l1jgo/asteroids/internal/stats"
	"github.com/l1jgo/asteroids/internal/telemetry"
)

// ── Console display helpers ────────────────────────────────────────

var printer = message.NewPrinter(language.English)

func printBanner() {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m            asteroids  v0.1.0              \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m       headless simulation kernel          \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func printSection(title string) {
	lineLen := 46 - utf8.RuneCountInString(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, value any) {
	numStr := printer.Sprint(value)
	dotsLen := 42 - utf8.RuneCountInString(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

func printSummary(k *game.Kernel, rounds *stats.RoundTracker, metrics *telemetry.Metrics) {
	ws := k.World()
	fmt.Println()
	printSection("Summary")
	printStat("frames", k.Frame())
	printStat("simulated seconds", printer.Sprintf("%.1f", k.Elapsed()))
	printStat("state", k.State().String())
	printStat("live entities", metrics.Live())
	printStat("hazards on field", ws.CountRole(component.RoleHazard))

	finished := rounds.Finished()
	printStat("rounds finished", len(finished))
	fired, destroyed := 0, 0
	for _, r := range finished {
		fired += r.ProjectilesFired
		destroyed += r.HazardsDestroyed
	}
	cur := rounds.Current()
	printStat("missiles fired", fired+cur.ProjectilesFired)
	printStat("asteroids destroyed", destroyed+cur.HazardsDestroyed)
	fmt.Println()
}
