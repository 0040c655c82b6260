package state

import "github.com/atomicstack/webtop/internal/logging/events"

// BrowserPatch is a partial update of a window's browser payload.
type BrowserPatch struct {
	CurrentURL   *string
	History      []string
	HistoryIndex *int
	Loading      *bool
	Title        *string
	Favicon      *string
	Error        *string
}

// UpdateBrowserData merges patch into the window's browser payload, creating
// the payload when absent.
func (s *WindowStore) UpdateBrowserData(id string, patch BrowserPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	win, ok := s.windows[id]
	if !ok {
		return
	}
	s.applyBrowserLocked(win, patch)
}

// NavigateBrowser loads url as a new history entry. Entries after the
// current cursor are discarded.
func (s *WindowStore) NavigateBrowser(id, url, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	win, ok := s.windows[id]
	if !ok {
		return
	}
	if title == "" {
		title = url
	}
	var history []string
	if b := win.Browser; b != nil && len(b.History) > 0 {
		end := b.HistoryIndex + 1
		if end > len(b.History) {
			end = len(b.History)
		}
		if end < 0 {
			end = 0
		}
		history = append(history, b.History[:end]...)
	}
	history = append(history, url)
	idx := len(history) - 1
	loading := true
	empty := ""
	s.applyBrowserLocked(win, BrowserPatch{
		CurrentURL:   &url,
		History:      history,
		HistoryIndex: &idx,
		Loading:      &loading,
		Title:        &title,
		Error:        &empty,
	})
	events.Browser.Navigate(id, url)
}

// BrowserGoBack moves the history cursor one entry back when possible.
func (s *WindowStore) BrowserGoBack(id string) {
	s.moveHistory(id, -1)
}

// BrowserGoForward moves the history cursor one entry forward when possible.
func (s *WindowStore) BrowserGoForward(id string) {
	s.moveHistory(id, 1)
}

func (s *WindowStore) moveHistory(id string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	win, ok := s.windows[id]
	if !ok || win.Browser == nil {
		return
	}
	next := win.Browser.HistoryIndex + delta
	if next < 0 || next >= len(win.Browser.History) {
		return
	}
	url := win.Browser.History[next]
	loading := true
	empty := ""
	s.applyBrowserLocked(win, BrowserPatch{
		CurrentURL:   &url,
		HistoryIndex: &next,
		Loading:      &loading,
		Error:        &empty,
	})
	events.Browser.History(id, url, delta)
}

// SetBrowserLoading toggles the loading flag.
func (s *WindowStore) SetBrowserLoading(id string, loading bool) {
	s.UpdateBrowserData(id, BrowserPatch{Loading: &loading})
}

// SetBrowserError records a load failure and clears the loading flag. An
// empty message clears the error.
func (s *WindowStore) SetBrowserError(id, msg string) {
	loading := false
	s.UpdateBrowserData(id, BrowserPatch{Error: &msg, Loading: &loading})
}

func (s *WindowStore) applyBrowserLocked(win *Window, patch BrowserPatch) {
	b := win.Browser
	if b == nil {
		b = &BrowserData{}
		win.Browser = b
	}
	if patch.CurrentURL != nil {
		b.CurrentURL = *patch.CurrentURL
	}
	if patch.History != nil {
		b.History = append([]string(nil), patch.History...)
	}
	if patch.HistoryIndex != nil {
		b.HistoryIndex = *patch.HistoryIndex
	}
	if patch.Loading != nil {
		b.Loading = *patch.Loading
	}
	if patch.Title != nil {
		b.Title = *patch.Title
	}
	if patch.Favicon != nil {
		b.Favicon = *patch.Favicon
	}
	if patch.Error != nil {
		b.Error = *patch.Error
	}
	win.UpdatedAt = s.now()
}
