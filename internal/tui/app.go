package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jfmyers9/grooveshark/pkg/grooveshark"
	"github.com/rivo/tview"
)

// Catalog is what the browser needs from the API.
type Catalog interface {
	SearchSongs(ctx context.Context, query string) ([]grooveshark.Song, error)
	AddFavorite(ctx context.Context, songID grooveshark.ID) error
}

// Config holds TUI configuration options
type Config struct {
	CallTimeout time.Duration // Upper bound for a single API call
}

// DefaultConfig returns the default TUI configuration
func DefaultConfig() Config {
	return Config{
		CallTimeout: 10 * time.Second,
	}
}

// App is an interactive song search browser
type App struct {
	app     *tview.Application
	input   *tview.InputField
	results *tview.Table
	status  *tview.TextView

	config  Config
	catalog Catalog

	// Guards songs, which is written by search goroutines and read by key handlers
	mu    sync.Mutex
	songs []grooveshark.Song

	cancelFunc context.CancelFunc
}

// New creates a browser backed by catalog
func New(catalog Catalog, cfg Config) *App {
	a := &App{
		app:     tview.NewApplication(),
		config:  cfg,
		catalog: catalog,
	}
	a.setupUI()
	return a
}

// setupUI creates the UI layout
func (a *App) setupUI() {
	a.input = tview.NewInputField().
		SetLabel(" Search: ").
		SetFieldWidth(0)
	a.input.SetBorder(true).
		SetTitle(" Grooveshark ").
		SetTitleAlign(tview.AlignLeft)
	a.input.SetDoneFunc(a.handleInputDone)

	a.results = tview.NewTable().
		SetSelectable(true, false).
		SetFixed(1, 0)
	a.results.SetBorder(true).
		SetTitle(" Songs ").
		SetTitleAlign(tview.AlignLeft)
	a.results.SetInputCapture(a.handleTableKey)
	a.setRows(nil)

	a.status = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetText(helpText)

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.input, 3, 0, true).
		AddItem(a.results, 0, 1, false).
		AddItem(a.status, 1, 0, false)

	a.app.SetRoot(flex, true)
}

const helpText = "[gray]enter:search  tab:results  f:favorite  esc:back  q:quit[-]"

// Run starts the TUI and blocks until it exits
func (a *App) Run(ctx context.Context) error {
	ctx, a.cancelFunc = context.WithCancel(ctx)
	defer a.cancelFunc()

	go func() {
		<-ctx.Done()
		a.app.Stop()
	}()

	if err := a.app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

// handleInputDone runs a search on enter and moves focus on tab
func (a *App) handleInputDone(key tcell.Key) {
	switch key {
	case tcell.KeyEnter:
		query := strings.TrimSpace(a.input.GetText())
		if query == "" {
			return
		}
		a.setStatus("[yellow]Searching...[-]")
		go func() {
			songs, status := a.search(query)
			a.app.QueueUpdateDraw(func() {
				a.showResults(songs, status)
				if len(songs) > 0 {
					a.app.SetFocus(a.results)
				}
			})
		}()
	case tcell.KeyTab:
		a.app.SetFocus(a.results)
	}
}

// handleTableKey processes keyboard input on the results table
func (a *App) handleTableKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEscape, tcell.KeyTab:
		a.app.SetFocus(a.input)
		return nil
	}

	switch event.Rune() {
	case 'q', 'Q':
		a.app.Stop()
		return nil
	case 'f', 'F':
		song, ok := a.selectedSong()
		if !ok {
			return nil
		}
		go func() {
			status := a.favorite(song)
			a.app.QueueUpdateDraw(func() { a.setStatus(status) })
		}()
		return nil
	}
	return event
}

// search queries the catalog and returns the songs plus a status line
func (a *App) search(query string) ([]grooveshark.Song, string) {
	ctx, cancel := context.WithTimeout(context.Background(), a.config.CallTimeout)
	defer cancel()

	songs, err := a.catalog.SearchSongs(ctx, query)
	if err != nil {
		return nil, fmt.Sprintf("[red]Search failed: %s[-]", tview.Escape(err.Error()))
	}
	return songs, fmt.Sprintf("[green]%d songs for %q[-]", len(songs), tview.Escape(query))
}

// favorite adds song to favorites and returns a status line
func (a *App) favorite(song grooveshark.Song) string {
	ctx, cancel := context.WithTimeout(context.Background(), a.config.CallTimeout)
	defer cancel()

	if err := a.catalog.AddFavorite(ctx, song.SongID); err != nil {
		return fmt.Sprintf("[red]Favorite failed: %s[-]", tview.Escape(err.Error()))
	}
	return fmt.Sprintf("[green]Added %s to favorites[-]", tview.Escape(song.SongName))
}

// showResults replaces the table contents. Must run on the UI goroutine.
func (a *App) showResults(songs []grooveshark.Song, status string) {
	a.mu.Lock()
	a.songs = songs
	a.mu.Unlock()

	a.setRows(songs)
	a.setStatus(status)
}

func (a *App) selectedSong() (grooveshark.Song, bool) {
	row, _ := a.results.GetSelection()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Row 0 is the header
	idx := row - 1
	if idx < 0 || idx >= len(a.songs) {
		return grooveshark.Song{}, false
	}
	return a.songs[idx], true
}

func (a *App) setRows(songs []grooveshark.Song) {
	a.results.Clear()
	for col, header := range []string{"Title", "Artist", "Album"} {
		a.results.SetCell(0, col, tview.NewTableCell(header).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false).
			SetExpansion(1))
	}
	for i, s := range songs {
		for col, text := range []string{s.SongName, s.ArtistName, s.AlbumName} {
			a.results.SetCell(i+1, col, tview.NewTableCell(tview.Escape(text)).SetExpansion(1))
		}
	}
	if len(songs) > 0 {
		a.results.Select(1, 0)
	}
}

func (a *App) setStatus(text string) {
	a.status.SetText(text + "  " + helpText)
}

// clientCatalog adapts a *grooveshark.Client to Catalog. The country is
// looked up on the first successful search and reused afterwards.
type clientCatalog struct {
	client *grooveshark.Client
	limit  int

	mu      sync.Mutex
	country *grooveshark.Country
}

// NewClientCatalog returns a Catalog that searches with client
func NewClientCatalog(client *grooveshark.Client, limit int) Catalog {
	return &clientCatalog{client: client, limit: limit}
}

func (c *clientCatalog) SearchSongs(ctx context.Context, query string) ([]grooveshark.Song, error) {
	country, err := c.countryFor(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get country: %w", err)
	}

	var opts []grooveshark.Option
	if c.limit > 0 {
		opts = append(opts, grooveshark.WithLimit(c.limit))
	}
	return c.client.Search().Songs(ctx, query, *country, opts...)
}

func (c *clientCatalog) countryFor(ctx context.Context) (*grooveshark.Country, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Held for the life of the browser only; the SDK itself caches nothing
	if c.country != nil {
		return c.country, nil
	}
	country, err := c.client.Country(ctx)
	if err != nil {
		return nil, err
	}
	c.country = country
	return country, nil
}

func (c *clientCatalog) AddFavorite(ctx context.Context, songID grooveshark.ID) error {
	status, err := c.client.Favorites().Add(ctx, songID)
	if err != nil {
		return err
	}
	if !status.Success {
		return fmt.Errorf("grooveshark did not accept the favorite")
	}
	return nil
}
