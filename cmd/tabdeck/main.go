package main

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/tabdeck/internal/culler"
	"github.com/nikbrunner/tabdeck/internal/exporter"
	"github.com/nikbrunner/tabdeck/internal/importer"
	"github.com/nikbrunner/tabdeck/internal/merge"
	"github.com/nikbrunner/tabdeck/internal/model"
	"github.com/nikbrunner/tabdeck/internal/picker"
	"github.com/nikbrunner/tabdeck/internal/search"
	"github.com/nikbrunner/tabdeck/internal/session"
	"github.com/nikbrunner/tabdeck/internal/storage"
	"github.com/nikbrunner/tabdeck/internal/tui"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "help", "--help", "-h":
			printHelp()
			return
		case "import":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: tabdeck import <file.html>\n")
				os.Exit(1)
			}
			runImport(os.Args[2])
			return
		case "export":
			var outputPath string
			if len(os.Args) >= 3 {
				outputPath = os.Args[2]
			}
			runExport(outputPath)
			return
		case "check":
			runCheck()
			return
		default:
			// Treat as search query (join all remaining args)
			query := strings.Join(os.Args[1:], " ")
			runQuickSearch(query)
			return
		}
	}

	// No args - run full TUI
	runTUI()
}

func printHelp() {
	help := `tabdeck - keyboard-driven browser tab panel

Usage:
  tabdeck               Open the tab panel
  tabdeck <query>       Quick search → select → activate/open
  tabdeck import <file> Import bookmarks from Netscape HTML
  tabdeck export [path] Export bookmarks to Netscape HTML
  tabdeck check         Check bookmark URLs for dead links
  tabdeck help          Show this help

Panel Keybindings:
  Navigation:
    ↑/↓         Move selection
    alt+1/2/3   List / Groups / Bookmarks view
    ctrl+space  Toggle the panel

  Actions:
    Enter       Activate tab (reopen if closed)
    Tab         Detail view (edit tags and note)
    /           Command palette (/mark /note /close /mute /pin)
    ctrl+p      Pin/unpin
    ctrl+b      Bookmark/unbookmark
    ctrl+w      Close tab
    ctrl+y      Copy URL to clipboard
    ctrl+e      Fold/unfold pinned section
    alt+↑/↓     Reorder pinned tab

  Other:
    Esc         Back out (command → query → panel)
    ctrl+c      Quit

Data Storage:
  ~/.config/tabdeck/tabs.json (or tabs.db)
  ~/.config/tabdeck/session.json
`
	fmt.Print(help)
}

// loadStore assembles the store from persistent storage and the session
// file, and wires synchronous persistence into its observer list.
func loadStore() (*model.Store, error) {
	backend, err := storage.OpenStorage()
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}

	state, err := backend.Load()
	if err != nil {
		return nil, fmt.Errorf("loading state: %w", err)
	}

	sessionPath, err := session.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("resolving session path: %w", err)
	}

	tabs, err := session.Load(sessionPath)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	if tabs == nil {
		tabs = session.DemoTabs()
	}

	store := model.NewStore()
	store.SetPersistent(state)
	store.SetLiveTabs(tabs)

	store.Subscribe(func() {
		if err := backend.Save(store.Persistent()); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving state: %v\n", err)
		}
		if err := session.Save(sessionPath, store.LiveTabs); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving session: %v\n", err)
		}
	})

	return store, nil
}

// runTUI runs the full interactive panel.
func runTUI() {
	store, err := loadStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	app := tui.NewApp(tui.AppParams{Store: store})
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}

// runQuickSearch performs a fuzzy search over open and bookmarked tabs and
// activates (or reopens) the selection.
func runQuickSearch(query string) {
	store, err := loadStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Open tabs plus closed bookmarks, one entry per URL.
	tabs := merge.MergeLive(store)
	for _, tab := range merge.MergeBookmarked(store) {
		if !tab.Ref.IsLive() {
			tabs = append(tabs, tab)
		}
	}

	results := search.FuzzySearch(tabs, query)
	if len(results) == 0 {
		fmt.Printf("No tabs found for '%s'\n", query)
		os.Exit(0)
	}

	var selected *merge.UnifiedTab

	if len(results) == 1 {
		selected = &results[0].Tab
		fmt.Printf("Opening: %s\n", selected.Title)
	} else {
		p := picker.New(results, query)
		program := tea.NewProgram(p)
		finalModel, err := program.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running picker: %v\n", err)
			os.Exit(1)
		}

		finalPicker := finalModel.(picker.Picker)
		if finalPicker.Cancelled() {
			os.Exit(0)
		}
		selected = finalPicker.SelectedTab()
	}

	if selected == nil {
		os.Exit(0)
	}

	if selected.Ref.IsLive() {
		if err := store.ActivateTab(selected.Ref.Live); err != nil {
			fmt.Fprintf(os.Stderr, "Error activating tab: %v\n", err)
			os.Exit(1)
		}
	} else {
		store.OpenTab(model.OpenTabParams{
			Title:   selected.Title,
			URL:     selected.URL,
			IconURL: selected.IconURL,
		})
	}

	openURL(selected.URL)
}

// openURL opens a URL in the default browser.
func openURL(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	}
	if cmd != nil {
		_ = cmd.Start()
	}
}

// runImport handles the import subcommand.
func runImport(filePath string) {
	store, err := loadStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	file, err := os.Open(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	groups, bookmarks, metadata, err := importer.ParseHTMLBookmarks(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing HTML: %v\n", err)
		os.Exit(1)
	}

	added, skipped := store.ImportMerge(groups, bookmarks, metadata)

	fmt.Printf("Imported %d bookmarks, %d groups", added, len(groups))
	if skipped > 0 {
		fmt.Printf(" (%d duplicates skipped)", skipped)
	}
	fmt.Println()
}

// runExport handles the export subcommand.
func runExport(outputPath string) {
	if outputPath == "" {
		var err error
		outputPath, err = exporter.DefaultExportPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting default export path: %v\n", err)
			os.Exit(1)
		}
	}

	backend, err := storage.OpenStorage()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening storage: %v\n", err)
		os.Exit(1)
	}

	state, err := backend.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading state: %v\n", err)
		os.Exit(1)
	}

	html := exporter.ExportHTML(state)

	if err := os.WriteFile(outputPath, []byte(html), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Exported %d bookmarks, %d groups to %s\n",
		len(state.Bookmarks), len(state.Groups), outputPath)
}

// runCheck handles the check subcommand: every bookmark URL is probed and
// the dead and unreachable ones are listed.
func runCheck() {
	backend, err := storage.OpenStorage()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening storage: %v\n", err)
		os.Exit(1)
	}

	state, err := backend.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading state: %v\n", err)
		os.Exit(1)
	}

	if len(state.Bookmarks) == 0 {
		fmt.Println("No bookmarks to check")
		return
	}

	configPath, err := storage.DefaultConfigFilePath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving config path: %v\n", err)
		os.Exit(1)
	}
	config, err := storage.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Checking %d bookmarks...\n", len(state.Bookmarks))
	results := culler.CheckBookmarks(state, config.CullConcurrency, config.CullTimeout(),
		config.CullExcludeDomains, func(completed, total int) {
			fmt.Printf("\r%d/%d", completed, total)
		})
	fmt.Println()

	var healthy, dead, unreachable []culler.Result
	for _, r := range results {
		switch r.Status {
		case culler.Healthy:
			healthy = append(healthy, r)
		case culler.Dead:
			dead = append(dead, r)
		default:
			unreachable = append(unreachable, r)
		}
	}

	fmt.Printf("\n%d healthy, %d dead, %d unreachable\n", len(healthy), len(dead), len(unreachable))

	if len(dead) > 0 {
		fmt.Println("\nDead (404/410):")
		for _, r := range dead {
			printCheckResult(r)
		}
	}
	if len(unreachable) > 0 {
		fmt.Println("\nUnreachable:")
		for _, r := range unreachable {
			printCheckResult(r)
		}
	}
}

func printCheckResult(r culler.Result) {
	label := r.Title
	if label == "" {
		label = r.URL
	}
	if r.Error != "" {
		fmt.Printf("  %s: %s\n", label, r.Error)
	} else {
		fmt.Printf("  %s: HTTP %d\n", label, r.StatusCode)
	}
	if label != r.URL {
		fmt.Printf("    %s\n", r.URL)
	}
}
