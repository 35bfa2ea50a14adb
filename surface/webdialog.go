package surface

import (
	"sync"
	"time"

	ttlworker "github.com/FloatTech/ttl"
	"github.com/pkg/errors"

	"github.com/moyoez/sharekit/bridge"
	"github.com/moyoez/sharekit/share"
	"github.com/moyoez/sharekit/tool"
	"github.com/moyoez/sharekit/types"
)

// SessionTTL bounds how long an unanswered dialog or sheet is kept.
const SessionTTL = 30 * time.Minute

// Broadcaster fans notifications out to connected clients.
type Broadcaster interface {
	Broadcast(notification *types.Notification)
}

type webDialogHandle string

func (h webDialogHandle) DialogID() string { return string(h) }

type webDialogSession struct {
	once     sync.Once
	id       string
	name     string
	url      string
	delegate share.WebDialogDelegate
}

// WebDialogs opens web dialogs in the browser. The dialog page redirects to
// the callback server, which resolves the session with Complete, Fail or
// Cancel.
type WebDialogs struct {
	WebBaseURL   string
	CallbackBase string
	Launcher     bridge.Launcher
	Hub          Broadcaster

	sessions *ttlworker.Cache[string, *webDialogSession]
}

func NewWebDialogs(webBaseURL, callbackBase string, launcher bridge.Launcher, hub Broadcaster) *WebDialogs {
	return &WebDialogs{
		WebBaseURL:   webBaseURL,
		CallbackBase: callbackBase,
		Launcher:     launcher,
		Hub:          hub,
		sessions:     ttlworker.NewCache[string, *webDialogSession](SessionTTL),
	}
}

func (w *WebDialogs) CreateAndShow(name string, params map[string]any, delegate share.WebDialogDelegate) (share.WebDialogHandle, error) {
	if w.WebBaseURL == "" {
		return nil, errors.New("web dialog base URL is not configured")
	}
	if w.Launcher == nil {
		return nil, errors.New("no launcher configured for web dialogs")
	}
	query, err := tool.FlattenParams(params)
	if err != nil {
		return nil, err
	}
	id := tool.GenerateShortID()
	if w.CallbackBase != "" {
		query["redirect_uri"] = tool.BuildDialogCallbackURL(w.CallbackBase, id)
	}
	query["display"] = "page"
	rawURL, err := tool.BuildWebDialogURL(w.WebBaseURL, name, query)
	if err != nil {
		return nil, err
	}

	session := &webDialogSession{id: id, name: name, url: rawURL, delegate: delegate}
	w.sessions.Set(id, session)
	if err := w.Launcher.Launch(rawURL, false, nil); err != nil {
		w.sessions.Delete(id)
		return nil, errors.Wrap(err, "failed to launch web dialog")
	}

	if w.Hub != nil {
		w.Hub.Broadcast(&types.Notification{
			Type:    types.NotifyTypeWebDialog,
			Title:   "Web Dialog",
			Message: name,
			Data: map[string]any{
				"id":  id,
				"url": rawURL,
			},
		})
	}
	tool.DefaultLogger.Infof("[WebDialog] opened %s dialog %s", name, id)
	return webDialogHandle(id), nil
}

// URL returns the launched URL of an open dialog.
func (w *WebDialogs) URL(id string) (string, bool) {
	session := w.sessions.Get(id)
	if session == nil {
		return "", false
	}
	return session.url, true
}

// Complete resolves dialog id with the result values the page sent back.
func (w *WebDialogs) Complete(id string, results map[string]any) bool {
	return w.resolve(id, func(s *webDialogSession) {
		s.delegate.WebDialogDidComplete(webDialogHandle(id), results)
	})
}

func (w *WebDialogs) Fail(id string, err error) bool {
	return w.resolve(id, func(s *webDialogSession) {
		s.delegate.WebDialogDidFail(webDialogHandle(id), err)
	})
}

func (w *WebDialogs) Cancel(id string) bool {
	return w.resolve(id, func(s *webDialogSession) {
		s.delegate.WebDialogDidCancel(webDialogHandle(id))
	})
}

func (w *WebDialogs) resolve(id string, deliver func(*webDialogSession)) bool {
	session := w.sessions.Get(id)
	if session == nil {
		tool.DefaultLogger.Debugf("[WebDialog] no open dialog %s", id)
		return false
	}
	w.sessions.Delete(id)
	delivered := false
	session.once.Do(func() {
		delivered = true
		if session.delegate != nil {
			deliver(session)
		}
	})
	return delivered
}

var _ share.WebDialogSurface = (*WebDialogs)(nil)
