package surface

import (
	"sync"

	ttlworker "github.com/FloatTech/ttl"
	"github.com/pkg/errors"

	"github.com/moyoez/sharekit/share"
	"github.com/moyoez/sharekit/tool"
	"github.com/moyoez/sharekit/types"
)

// SheetView is what a client needs to render a presented compose sheet.
type SheetView struct {
	ID          string   `json:"id"`
	SurfaceID   string   `json:"surfaceId"`
	InitialText string   `json:"initialText,omitempty"`
	URLs        []string `json:"urls,omitempty"`
	VideoURLs   []string `json:"videoURLs,omitempty"`
	ImageCount  int      `json:"imageCount"`
}

// ComposeSheet collects content until it is presented. Setters report false
// once the sheet is on screen.
type ComposeSheet struct {
	owner *ComposeSheets

	mu        sync.Mutex
	once      sync.Once
	id        string
	text      string
	images    [][]byte
	urls      []string
	videoURLs []string
	handler   func(share.SheetResult)
	presented bool
	surfaceID string
}

func (s *ComposeSheet) edit(apply func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.presented {
		return false
	}
	apply()
	return true
}

func (s *ComposeSheet) SetInitialText(text string) bool {
	return s.edit(func() { s.text = text })
}

func (s *ComposeSheet) AddImage(image []byte) bool {
	if len(image) == 0 {
		return false
	}
	return s.edit(func() { s.images = append(s.images, image) })
}

func (s *ComposeSheet) AddURL(u string) bool {
	if u == "" {
		return false
	}
	return s.edit(func() { s.urls = append(s.urls, u) })
}

func (s *ComposeSheet) AddVideoURL(u string) bool {
	if u == "" {
		return false
	}
	return s.edit(func() { s.videoURLs = append(s.videoURLs, u) })
}

func (s *ComposeSheet) SetCompletionHandler(handler func(share.SheetResult)) {
	s.mu.Lock()
	s.handler = handler
	s.mu.Unlock()
}

// Present puts the sheet on surface and waits for Finish.
func (s *ComposeSheet) Present(surface *types.Surface) error {
	if surface == nil {
		return errors.New("compose sheet needs a surface")
	}
	s.mu.Lock()
	if s.presented {
		s.mu.Unlock()
		return errors.New("compose sheet already presented")
	}
	s.presented = true
	s.surfaceID = surface.ID
	s.mu.Unlock()

	s.owner.present(s)
	return nil
}

func (s *ComposeSheet) view() SheetView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SheetView{
		ID:          s.id,
		SurfaceID:   s.surfaceID,
		InitialText: s.text,
		URLs:        append([]string(nil), s.urls...),
		VideoURLs:   append([]string(nil), s.videoURLs...),
		ImageCount:  len(s.images),
	}
}

// ComposeSheets hands out compose sheets and tracks the presented ones until
// a client finishes them.
type ComposeSheets struct {
	Enabled bool
	Hub     Broadcaster

	sheets *ttlworker.Cache[string, *ComposeSheet]
}

func NewComposeSheets(enabled bool, hub Broadcaster) *ComposeSheets {
	return &ComposeSheets{
		Enabled: enabled,
		Hub:     hub,
		sheets:  ttlworker.NewCache[string, *ComposeSheet](SessionTTL),
	}
}

func (c *ComposeSheets) Available() bool {
	return c.Enabled
}

func (c *ComposeSheets) MakeController() (share.ComposeSheet, error) {
	if !c.Enabled {
		return nil, errors.New("compose sheets are disabled")
	}
	return &ComposeSheet{owner: c, id: tool.GenerateShortID()}, nil
}

func (c *ComposeSheets) present(s *ComposeSheet) {
	c.sheets.Set(s.id, s)
	view := s.view()
	tool.DefaultLogger.Infof("[Sheet] presented compose sheet %s on %s", view.ID, view.SurfaceID)
	if c.Hub == nil {
		return
	}
	c.Hub.Broadcast(&types.Notification{
		Type:    types.NotifyTypeComposeSheet,
		Title:   "Compose Sheet",
		Message: view.InitialText,
		Data: map[string]any{
			"id":         view.ID,
			"surfaceId":  view.SurfaceID,
			"urls":       view.URLs,
			"videoURLs":  view.VideoURLs,
			"imageCount": view.ImageCount,
		},
	})
}

// Lookup returns a presented sheet that is still open.
func (c *ComposeSheets) Lookup(id string) (SheetView, bool) {
	s := c.sheets.Get(id)
	if s == nil {
		return SheetView{}, false
	}
	return s.view(), true
}

// Finish closes sheet id with result. It reports false when no such sheet is open.
func (c *ComposeSheets) Finish(id string, result share.SheetResult) bool {
	s := c.sheets.Get(id)
	if s == nil {
		return false
	}
	c.sheets.Delete(id)
	delivered := false
	s.once.Do(func() {
		delivered = true
		s.mu.Lock()
		handler := s.handler
		s.mu.Unlock()
		if handler != nil {
			handler(result)
		}
	})
	return delivered
}

var (
	_ share.SheetFactory = (*ComposeSheets)(nil)
	_ share.ComposeSheet = (*ComposeSheet)(nil)
)
