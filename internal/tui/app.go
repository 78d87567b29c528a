package tui

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/krzmknt/macos-music-tui/internal/cache"
	"github.com/krzmknt/macos-music-tui/internal/config"
	"github.com/krzmknt/macos-music-tui/internal/domain"
	libsync "github.com/krzmknt/macos-music-tui/internal/sync"
	"github.com/krzmknt/macos-music-tui/internal/tui/styles"
)

// focusArea identifies which pane receives key input.
type focusArea int

const (
	focusRecent focusArea = iota
	focusPlaylists
	focusContent
	focusSearch
)

// tickMsg drives the spinner and the sync channel drain.
type tickMsg time.Time

const (
	tickInterval   = 100 * time.Millisecond
	searchMinChars = 3
)

// listRow is one rendered line of the content pane.
type listRow struct {
	name      string
	artist    string
	album     string
	time      string
	trackNum  int
	favorited bool
}

// Model is the single consumer of both sync pipelines: it owns the caches and
// is the only code path that mutates them, applying channel messages in
// arrival order on each tick.
type Model struct {
	tracks    *cache.TrackCache
	playlists *cache.PlaylistCache

	trackSyncer    *libsync.TrackSyncer
	playlistSyncer *libsync.PlaylistSyncer
	syncOpts       libsync.Options
	logger         *slog.Logger
	styles         styles.Styles

	focus focusArea

	recent         []cache.AlbumRef
	recentSelected int
	recentLimit    int

	catalog          []domain.PlaylistInfo
	playlistFilter   string
	playlistSelected int

	content          []listRow
	contentTitle     string
	contentSource    string
	isPlaylistDetail bool
	contentSelected  int

	searchInput   textinput.Model
	searchResults []listRow

	statusMsg       string
	trackSyncing    bool
	playlistSyncing bool
	loadProgress    string

	width   int
	height  int
	spinner int
}

// NewModel wires the caches and pipelines into the TUI.
func NewModel(
	tracks *cache.TrackCache,
	playlists *cache.PlaylistCache,
	trackSyncer *libsync.TrackSyncer,
	playlistSyncer *libsync.PlaylistSyncer,
	opts libsync.Options,
	settings config.Settings,
	recentLimit int,
	logger *slog.Logger,
) Model {
	if logger == nil {
		logger = slog.Default()
	}
	if recentLimit <= 0 {
		recentLimit = 30
	}

	input := textinput.New()
	input.Placeholder = "search (name: artist: album:)"
	input.CharLimit = 128

	m := Model{
		tracks:          tracks,
		playlists:       playlists,
		trackSyncer:     trackSyncer,
		playlistSyncer:  playlistSyncer,
		syncOpts:        opts,
		logger:          logger,
		styles:          styles.New(settings.HighlightColor),
		recentLimit:     recentLimit,
		searchInput:     input,
		trackSyncing:    !tracks.IsComplete(),
		playlistSyncing: true,
	}

	m.refreshRecent()
	m.catalog = cachedCatalog(playlists)
	if len(m.recent) > 0 {
		m.loadAlbumContent(m.recent[0])
	}
	if tracks.FreshBuild {
		m.statusMsg = "Building library cache for the first time..."
	}
	return m
}

// cachedCatalog seeds the playlist pane from the side-cache before the
// pipeline delivers the live catalog.
func cachedCatalog(pc *cache.PlaylistCache) []domain.PlaylistInfo {
	catalog := make([]domain.PlaylistInfo, 0, len(pc.Playlists))
	for name, p := range pc.Playlists {
		catalog = append(catalog, domain.PlaylistInfo{Name: name, TrackCount: len(p.Tracks)})
	}
	sort.Slice(catalog, func(i, j int) bool { return catalog[i].Name < catalog[j].Name })
	return catalog
}

// Init launches both background pipelines and starts the tick loop.
func (m Model) Init() tea.Cmd {
	st := libsync.SnapshotTrackState(m.tracks)
	go m.trackSyncer.Run(context.Background(), st)

	cached := make(map[string]bool, len(m.playlists.Playlists))
	for name := range m.playlists.Playlists {
		cached[name] = true
	}
	go m.playlistSyncer.Run(context.Background(), cached)

	return tea.Batch(tickCmd(), textinput.Blink)
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.spinner = (m.spinner + 1) % 10
		(&m).drainSync()
		return m, tickCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// drainSync applies every pending pipeline message, in arrival order, without
// blocking. The tick returns immediately when nothing is ready.
func (m *Model) drainSync() {
	for draining := true; draining; {
		select {
		case msg := <-m.trackSyncer.Messages():
			m.applyTrackMessage(msg)
		default:
			draining = false
		}
	}
	for draining := true; draining; {
		select {
		case msg := <-m.playlistSyncer.Messages():
			m.applyPlaylistMessage(msg)
		default:
			draining = false
		}
	}
}

func (m *Model) applyTrackMessage(msg libsync.TrackMessage) {
	res := libsync.ApplyTrackMessage(m.tracks, msg, m.syncOpts, m.logger)
	if res.Done {
		m.trackSyncing = false
	}
	if res.Changed {
		m.refreshRecent()
		if res.Added > 0 {
			m.statusMsg = fmt.Sprintf("%d new tracks added", res.Added)
		}
	}
}

func (m *Model) applyPlaylistMessage(msg libsync.PlaylistMessage) {
	res := libsync.ApplyPlaylistMessage(m.playlists, msg, m.logger)
	if res.Catalog != nil {
		m.catalog = res.Catalog
		if m.playlistSelected >= len(m.catalog) {
			m.playlistSelected = 0
		}
	}
	if res.Progress != "" {
		m.loadProgress = res.Progress
	}
	if name := res.Loaded + res.Refreshed; name != "" {
		if res.Refreshed != "" {
			m.statusMsg = fmt.Sprintf("Refreshed %s", res.Refreshed)
		}
		if m.isPlaylistDetail && m.contentSource == name {
			m.loadPlaylistContent(name)
		}
	}
	if res.Done {
		m.playlistSyncing = false
		m.loadProgress = ""
	}
}

func (m *Model) refreshRecent() {
	m.recent = m.tracks.RecentAlbums(m.recentLimit)
	if m.recentSelected >= len(m.recent) {
		m.recentSelected = 0
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.focus == focusSearch {
		return m.handleSearchKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "/":
		m.focus = focusSearch
		m.searchInput.SetValue("")
		m.searchResults = nil
		m.searchInput.Focus()
		return m, textinput.Blink

	case "tab":
		switch m.focus {
		case focusRecent:
			m.focus = focusPlaylists
			m.loadSelectedPlaylist()
		case focusPlaylists:
			m.focus = focusContent
		default:
			m.focus = focusRecent
			m.loadSelectedAlbum()
		}
		return m, nil

	case "up", "k":
		m.moveSelection(-1)
		return m, nil

	case "down", "j":
		m.moveSelection(1)
		return m, nil

	case "r":
		if m.isPlaylistDetail && m.contentSource != "" {
			m.statusMsg = fmt.Sprintf("Refreshing %s...", m.contentSource)
			m.playlistSyncer.ForceRefresh(context.Background(), m.contentSource)
		}
		return m, nil

	case "esc":
		if m.focus == focusPlaylists && m.playlistFilter != "" {
			m.playlistFilter = ""
			m.playlistSelected = 0
		}
		return m, nil

	case "backspace":
		if m.focus == focusPlaylists && m.playlistFilter != "" {
			m.playlistFilter = m.playlistFilter[:len(m.playlistFilter)-1]
			m.playlistSelected = 0
		}
		return m, nil
	}

	// Typing in the playlist pane narrows it with the fuzzy filter.
	if m.focus == focusPlaylists && msg.Type == tea.KeyRunes {
		m.playlistFilter += string(msg.Runes)
		m.playlistSelected = 0
		return m, nil
	}

	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.focus = focusRecent
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.searchResults = nil
		return m, nil
	case "up":
		m.moveContentSelection(-1, m.searchResults)
		return m, nil
	case "down":
		m.moveContentSelection(1, m.searchResults)
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.runSearch()
	return m, cmd
}

// runSearch queries the cache on every keystroke once the query is long
// enough; the cache answers synchronously.
func (m *Model) runSearch() {
	query := m.searchInput.Value()
	if len(query) < searchMinChars {
		m.searchResults = nil
		return
	}
	results := m.tracks.Search(query)
	sortTracks(results)
	rows := make([]listRow, len(results))
	for i, t := range results {
		rows[i] = trackRow(t)
	}
	m.searchResults = rows
	m.contentSelected = 0
}

// sortTracks applies the stable human-facing order: artist, year, album,
// disc, track.
func sortTracks(tracks []domain.Track) {
	sort.SliceStable(tracks, func(i, j int) bool {
		a, b := tracks[i], tracks[j]
		if a.Artist != b.Artist {
			return a.Artist < b.Artist
		}
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Album != b.Album {
			return a.Album < b.Album
		}
		if a.DiscNum != b.DiscNum {
			return a.DiscNum < b.DiscNum
		}
		return a.TrackNum < b.TrackNum
	})
}

func (m *Model) moveSelection(delta int) {
	switch m.focus {
	case focusRecent:
		m.recentSelected = clamp(m.recentSelected+delta, len(m.recent))
		m.loadSelectedAlbum()
	case focusPlaylists:
		m.playlistSelected = clamp(m.playlistSelected+delta, len(m.visiblePlaylists()))
		m.loadSelectedPlaylist()
	case focusContent:
		m.moveContentSelection(delta, m.content)
	}
}

func (m *Model) moveContentSelection(delta int, rows []listRow) {
	m.contentSelected = clamp(m.contentSelected+delta, len(rows))
}

func clamp(v, length int) int {
	if length == 0 {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v >= length {
		return length - 1
	}
	return v
}

func (m *Model) visiblePlaylists() []domain.PlaylistInfo {
	return filterPlaylists(m.catalog, m.playlistFilter)
}

func (m *Model) loadSelectedAlbum() {
	if m.recentSelected < len(m.recent) {
		m.loadAlbumContent(m.recent[m.recentSelected])
	}
}

func (m *Model) loadAlbumContent(ref cache.AlbumRef) {
	tracks := m.tracks.TracksByAlbum(ref.Album)

	title := fmt.Sprintf("%s - %s", ref.Album, ref.Artist)
	if len(tracks) > 0 && tracks[0].Year > 0 {
		title = fmt.Sprintf("%s (%d)", title, tracks[0].Year)
	}

	rows := make([]listRow, len(tracks))
	for i, t := range tracks {
		rows[i] = trackRow(t)
	}
	m.content = rows
	m.contentTitle = title
	m.contentSource = ref.Album
	m.isPlaylistDetail = false
	m.contentSelected = 0
}

func (m *Model) loadSelectedPlaylist() {
	visible := m.visiblePlaylists()
	if m.playlistSelected >= len(visible) {
		return
	}
	name := visible[m.playlistSelected].Name
	m.loadPlaylistContent(name)
	if !m.playlists.Has(name) {
		// Not in the side-cache yet; fetch it through the refresh path so the
		// result funnels through the usual apply point.
		m.playlistSyncer.ForceRefresh(context.Background(), name)
	}
}

func (m *Model) loadPlaylistContent(name string) {
	m.contentTitle = name
	m.contentSource = name
	m.isPlaylistDetail = true
	m.contentSelected = 0

	p, ok := m.playlists.Get(name)
	if !ok {
		m.content = nil
		return
	}
	rows := make([]listRow, len(p.Tracks))
	for i, t := range p.Tracks {
		rows[i] = playlistTrackRow(t)
	}
	m.content = rows
}

func trackRow(t domain.Track) listRow {
	return listRow{
		name:      t.Name,
		artist:    t.Artist,
		album:     t.Album,
		time:      t.Time,
		trackNum:  t.TrackNum,
		favorited: t.Favorited,
	}
}

func playlistTrackRow(t domain.PlaylistTrack) listRow {
	return listRow{
		name:      t.Name,
		artist:    t.Artist,
		album:     t.Album,
		time:      t.Time,
		favorited: t.Favorited,
	}
}
