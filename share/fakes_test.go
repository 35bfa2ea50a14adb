package share

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/moyoez/sharekit/types"
)

type fakeProbe struct {
	installed bool
	schemes   map[string]bool
}

func (p *fakeProbe) IsPeerAppInstalled() bool      { return p.installed }
func (p *fakeProbe) CanOpenURL(scheme string) bool { return p.schemes[scheme] }

type fakeFactory struct {
	built []*types.BridgeRequest
	fail  bool
}

func (f *fakeFactory) Build(kind types.ChannelKind, scheme, methodName string, params map[string]any) (*types.BridgeRequest, error) {
	if f.fail {
		return nil, errors.New("encode failed")
	}
	req := &types.BridgeRequest{
		ActionID:   fmt.Sprintf("action-%d", len(f.built)+1),
		Kind:       kind,
		Scheme:     scheme,
		MethodName: methodName,
		Params:     params,
	}
	f.built = append(f.built, req)
	return req, nil
}

type fakeOpener struct {
	opened   []*types.BridgeRequest
	handlers []func(*types.BridgeResponse)
	err      error
	trace    *[]string
}

func (o *fakeOpener) Open(req *types.BridgeRequest, _ bool, _ *types.Surface, handler func(*types.BridgeResponse)) error {
	if o.trace != nil {
		switch {
		case req.Kind == types.ChannelKindNative:
			*o.trace = append(*o.trace, "native")
		case req.MethodName == feedMethodName:
			*o.trace = append(*o.trace, "feed_browser")
		default:
			*o.trace = append(*o.trace, "browser")
		}
	}
	if o.err != nil {
		return o.err
	}
	o.opened = append(o.opened, req)
	o.handlers = append(o.handlers, handler)
	return nil
}

func (o *fakeOpener) respond(i int, resp *types.BridgeResponse) {
	o.handlers[i](resp)
}

type fakeSheet struct {
	text       string
	images     [][]byte
	urls       []string
	videoURLs  []string
	handler    func(SheetResult)
	presented  int
	presentErr error
}

func (s *fakeSheet) SetInitialText(text string) bool { s.text = text; return true }
func (s *fakeSheet) AddImage(image []byte) bool      { s.images = append(s.images, image); return true }
func (s *fakeSheet) AddURL(u string) bool            { s.urls = append(s.urls, u); return true }
func (s *fakeSheet) AddVideoURL(u string) bool       { s.videoURLs = append(s.videoURLs, u); return true }
func (s *fakeSheet) SetCompletionHandler(handler func(SheetResult)) {
	s.handler = handler
}
func (s *fakeSheet) Present(*types.Surface) error {
	s.presented++
	return s.presentErr
}

type fakeSheets struct {
	available bool
	sheets    []*fakeSheet
	makeErr   error
	trace     *[]string
}

func (f *fakeSheets) Available() bool { return f.available }
func (f *fakeSheets) MakeController() (ComposeSheet, error) {
	if f.trace != nil {
		*f.trace = append(*f.trace, "sheet")
	}
	if f.makeErr != nil {
		return nil, f.makeErr
	}
	sheet := &fakeSheet{}
	f.sheets = append(f.sheets, sheet)
	return sheet, nil
}

type fakeHandle string

func (h fakeHandle) DialogID() string { return string(h) }

type fakeWebDialogs struct {
	names     []string
	params    []map[string]any
	delegates []WebDialogDelegate
	err       error
	trace     *[]string
}

func (w *fakeWebDialogs) CreateAndShow(name string, params map[string]any, delegate WebDialogDelegate) (WebDialogHandle, error) {
	if w.trace != nil {
		if name == feedMethodName {
			*w.trace = append(*w.trace, "feed_web")
		} else {
			*w.trace = append(*w.trace, "web")
		}
	}
	if w.err != nil {
		return nil, w.err
	}
	w.names = append(w.names, name)
	w.params = append(w.params, params)
	w.delegates = append(w.delegates, delegate)
	return fakeHandle(fmt.Sprintf("web-%d", len(w.names))), nil
}

type fakeRemote struct {
	defaultSheet bool
	preferNative bool
	inApp        bool
}

func (r *fakeRemote) DefaultShareModeIsComposeSheet() bool { return r.defaultSheet }
func (r *fakeRemote) ShouldPreferNativeDialog() bool       { return r.preferNative }
func (r *fakeRemote) ShouldUseInAppBrowser() bool          { return r.inApp }

type fakeTokens struct {
	token *types.AccessToken
}

func (t *fakeTokens) CurrentAccessToken() *types.AccessToken { return t.token }

type fakeStager struct {
	images [][]byte
	done   func([]string, error)

	// answer, when set, is passed to done before Stage returns.
	answer *stageAnswer
}

type stageAnswer struct {
	uris []string
	err  error
}

func (s *fakeStager) Stage(_ context.Context, images [][]byte, _ *types.AccessToken, done func([]string, error)) {
	s.images = images
	s.done = done
	if s.answer != nil {
		done(s.answer.uris, s.answer.err)
	}
}

type fakeEvents struct {
	names  []string
	params []map[string]any
}

func (e *fakeEvents) LogEvent(name string, params map[string]any) {
	e.names = append(e.names, name)
	e.params = append(e.params, params)
}

type recordingDelegate struct {
	completed []map[string]any
	failed    []error
	cancelled int
}

func (r *recordingDelegate) OnComplete(_ *Dialog, results map[string]any) {
	r.completed = append(r.completed, results)
}
func (r *recordingDelegate) OnFail(_ *Dialog, err error) { r.failed = append(r.failed, err) }
func (r *recordingDelegate) OnCancel(*Dialog)            { r.cancelled++ }

func (r *recordingDelegate) calls() int {
	return len(r.completed) + len(r.failed) + r.cancelled
}

type harness struct {
	trace    []string
	probe    *fakeProbe
	factory  *fakeFactory
	opener   *fakeOpener
	sheets   *fakeSheets
	web      *fakeWebDialogs
	remote   *fakeRemote
	tokens   *fakeTokens
	stager   *fakeStager
	events   *fakeEvents
	delegate *recordingDelegate
	fs       afero.Fs
}

const testExtScheme = "sharepeer-ext"

func newHarness() *harness {
	h := &harness{
		probe:    &fakeProbe{installed: true, schemes: map[string]bool{testExtScheme: true}},
		factory:  &fakeFactory{},
		opener:   &fakeOpener{},
		sheets:   &fakeSheets{available: true},
		web:      &fakeWebDialogs{},
		remote:   &fakeRemote{preferNative: true},
		tokens:   &fakeTokens{token: &types.AccessToken{Token: "token"}},
		stager:   &fakeStager{},
		events:   &fakeEvents{},
		delegate: &recordingDelegate{},
		fs:       afero.NewMemMapFs(),
	}
	h.opener.trace = &h.trace
	h.sheets.trace = &h.trace
	h.web.trace = &h.trace
	return h
}

func (h *harness) deps() Deps {
	return Deps{
		Probe:                h.probe,
		BridgeFactory:        h.factory,
		BridgeOpener:         h.opener,
		WebDialogs:           h.web,
		Sheets:               h.sheets,
		RemoteConfig:         h.remote,
		Tokens:               h.tokens,
		Stager:               h.stager,
		Events:               h.events,
		Fs:                   h.fs,
		TempDir:              "/tmp/sharekit-test",
		AppID:                "123",
		PeerScheme:           "sharepeer",
		ShareExtensionScheme: testExtScheme,
	}
}

func (h *harness) dialog(content types.ShareContent, mode types.Mode) *Dialog {
	d := New(&types.Surface{ID: "test"}, content, h.delegate, h.deps())
	d.Mode = mode
	return d
}

type unknownContent struct {
	types.Common
}

func (*unknownContent) ContentKind() types.ContentKind { return types.ContentKindUnknown }

// removeFailingFs refuses to delete anything.
type removeFailingFs struct {
	afero.Fs
}

func (removeFailingFs) Remove(string) error { return errors.New("remove refused") }

func readOnly(fs afero.Fs) afero.Fs {
	return afero.NewReadOnlyFs(fs)
}
