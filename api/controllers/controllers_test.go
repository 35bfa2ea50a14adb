package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/moyoez/sharekit/api/middlewares"
	"github.com/moyoez/sharekit/api/models"
	"github.com/moyoez/sharekit/share"
	"github.com/moyoez/sharekit/surface"
	"github.com/moyoez/sharekit/types"
)

type fakeBridge struct {
	pending  map[string]*types.BridgeRequest
	resolved map[string]*types.BridgeResponse
}

func (b *fakeBridge) Resolve(actionID string, resp *types.BridgeResponse) bool {
	if _, ok := b.pending[actionID]; !ok {
		return false
	}
	delete(b.pending, actionID)
	b.resolved[actionID] = resp
	return true
}

func (b *fakeBridge) Lookup(actionID string) (*types.BridgeRequest, bool) {
	req, ok := b.pending[actionID]
	return req, ok
}

type fakeDialogs struct {
	open      map[string]bool
	completed map[string]map[string]any
	failed    map[string]error
	cancelled map[string]bool
}

func (d *fakeDialogs) take(id string) bool {
	if !d.open[id] {
		return false
	}
	delete(d.open, id)
	return true
}

func (d *fakeDialogs) Complete(id string, results map[string]any) bool {
	if !d.take(id) {
		return false
	}
	d.completed[id] = results
	return true
}

func (d *fakeDialogs) Fail(id string, err error) bool {
	if !d.take(id) {
		return false
	}
	d.failed[id] = err
	return true
}

func (d *fakeDialogs) Cancel(id string) bool {
	if !d.take(id) {
		return false
	}
	d.cancelled[id] = true
	return true
}

type fakeSheets struct {
	views    map[string]surface.SheetView
	finished map[string]share.SheetResult
}

func (s *fakeSheets) Lookup(id string) (surface.SheetView, bool) {
	view, ok := s.views[id]
	return view, ok
}

func (s *fakeSheets) Finish(id string, result share.SheetResult) bool {
	if _, ok := s.views[id]; !ok {
		return false
	}
	delete(s.views, id)
	s.finished[id] = result
	return true
}

type fixture struct {
	router  *gin.Engine
	bridge  *fakeBridge
	dialogs *fakeDialogs
	sheets  *fakeSheets
}

// setupRouter creates a test router with the callback endpoints
func setupRouter() *fixture {
	gin.SetMode(gin.TestMode)
	f := &fixture{
		router: gin.New(),
		bridge: &fakeBridge{
			pending:  map[string]*types.BridgeRequest{"action-1": {ActionID: "action-1", URL: "https://share.example.com/dialog/share"}},
			resolved: map[string]*types.BridgeResponse{},
		},
		dialogs: &fakeDialogs{
			open:      map[string]bool{"dlg-1": true},
			completed: map[string]map[string]any{},
			failed:    map[string]error{},
			cancelled: map[string]bool{},
		},
		sheets: &fakeSheets{
			views:    map[string]surface.SheetView{"sheet-1": {ID: "sheet-1", InitialText: "hello"}},
			finished: map[string]share.SheetResult{},
		},
	}
	models.SetShareBackends(f.bridge, f.dialogs, f.sheets)

	callbacks := f.router.Group("/api/share/v1")
	{
		callbacks.GET("/bridge/:actionId", BridgeCallbackGet)
		callbacks.POST("/bridge/:actionId", BridgeCallbackPost)
		callbacks.GET("/dialog/:id", WebDialogRedirect)
		callbacks.POST("/dialog/:id/fail", WebDialogFail)
		callbacks.POST("/dialog/:id/cancel", WebDialogCancel)
	}
	local := f.router.Group("/api/share/v1/sheet", middlewares.OnlyAllowLocal)
	{
		local.GET("/:id", SheetGet)
		local.POST("/:id/done", SheetDone)
		local.POST("/:id/cancel", SheetCancel)
	}
	self := f.router.Group("/api/self/v1", middlewares.OnlyAllowLocal)
	{
		self.GET("/create-qr-code", GenerateQRCode)
		self.GET("/status", UserStatus)
	}
	return f
}

func (f *fixture) do(method, path string, body any, remote string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.RemoteAddr = remote
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

const localAddr = "127.0.0.1:12345"

// TestBridgeCallbackPost tests the peer app posting a response
func TestBridgeCallbackPost(t *testing.T) {
	f := setupRouter()

	w := f.do("POST", "/api/share/v1/bridge/action-1", types.BridgeResponseBody{CompletionGesture: "post", PostID: "42"}, localAddr)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := f.bridge.resolved["action-1"]
	if resp == nil || resp.Params["postId"] != "42" || resp.Cancelled {
		t.Errorf("Unexpected resolved response: %+v", resp)
	}

	w = f.do("POST", "/api/share/v1/bridge/action-1", types.BridgeResponseBody{}, localAddr)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status code 404 for a resolved action, got %d", w.Code)
	}
}

// TestBridgeCallbackPostMismatch tests an action id mismatch between path and body
func TestBridgeCallbackPostMismatch(t *testing.T) {
	f := setupRouter()
	w := f.do("POST", "/api/share/v1/bridge/action-1", types.BridgeResponseBody{ActionID: "other"}, localAddr)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status code 400, got %d", w.Code)
	}
	if _, ok := f.bridge.pending["action-1"]; !ok {
		t.Error("Action should still be pending")
	}
}

// TestBridgeCallbackGet tests the browser redirect
func TestBridgeCallbackGet(t *testing.T) {
	f := setupRouter()
	w := f.do("GET", "/api/share/v1/bridge/action-1?completionGesture=cancel", nil, "203.0.113.9:4000")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code 200, got %d", w.Code)
	}
	if resp := f.bridge.resolved["action-1"]; resp == nil || !resp.Cancelled {
		t.Errorf("Expected a cancelled response, got %+v", resp)
	}
}

// TestWebDialogRoutes tests redirect, fail and cancel for web dialogs
func TestWebDialogRoutes(t *testing.T) {
	f := setupRouter()
	w := f.do("GET", "/api/share/v1/dialog/dlg-1?post_id=7&error_code=0", nil, localAddr)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code 200, got %d", w.Code)
	}
	if results := f.dialogs.completed["dlg-1"]; results["post_id"] != "7" {
		t.Errorf("Unexpected results: %v", results)
	}

	f.dialogs.open["dlg-2"] = true
	w = f.do("POST", "/api/share/v1/dialog/dlg-2/fail", WebDialogFailRequest{Error: "blocked"}, localAddr)
	if w.Code != http.StatusOK || f.dialogs.failed["dlg-2"] == nil || f.dialogs.failed["dlg-2"].Error() != "blocked" {
		t.Errorf("Expected the dialog to fail with the posted error, got %d %v", w.Code, f.dialogs.failed)
	}

	f.dialogs.open["dlg-3"] = true
	if w = f.do("POST", "/api/share/v1/dialog/dlg-3/cancel", nil, localAddr); w.Code != http.StatusOK || !f.dialogs.cancelled["dlg-3"] {
		t.Errorf("Expected the dialog to be cancelled, got %d", w.Code)
	}

	if w = f.do("GET", "/api/share/v1/dialog/unknown", nil, localAddr); w.Code != http.StatusNotFound {
		t.Errorf("Expected status code 404, got %d", w.Code)
	}
}

// TestSheetRoutes tests compose sheet lookup and completion
func TestSheetRoutes(t *testing.T) {
	f := setupRouter()

	w := f.do("GET", "/api/share/v1/sheet/sheet-1", nil, localAddr)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code 200, got %d", w.Code)
	}
	var response map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if data, ok := response["data"].(map[string]any); !ok || data["initialText"] != "hello" {
		t.Errorf("Unexpected sheet data: %v", response)
	}

	if w = f.do("POST", "/api/share/v1/sheet/sheet-1/done", nil, "203.0.113.9:4000"); w.Code != http.StatusForbidden {
		t.Errorf("Expected remote clients to be rejected, got %d", w.Code)
	}
	if w = f.do("POST", "/api/share/v1/sheet/sheet-1/done", nil, localAddr); w.Code != http.StatusOK {
		t.Errorf("Expected status code 200, got %d", w.Code)
	}
	if f.sheets.finished["sheet-1"] != share.SheetDone {
		t.Errorf("Expected the sheet to be done, got %v", f.sheets.finished)
	}
	if w = f.do("POST", "/api/share/v1/sheet/sheet-1/cancel", nil, localAddr); w.Code != http.StatusNotFound {
		t.Errorf("Expected status code 404 for a finished sheet, got %d", w.Code)
	}
}

// TestGenerateQRCode tests QR rendering for data and pending actions
func TestGenerateQRCode(t *testing.T) {
	f := setupRouter()

	w := f.do("GET", "/api/self/v1/create-qr-code?data=hello&size=100x100", nil, localAddr)
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "image/png" {
		t.Errorf("Expected a PNG, got %d %s", w.Code, w.Header().Get("Content-Type"))
	}
	if w = f.do("GET", "/api/self/v1/create-qr-code?action=action-1", nil, localAddr); w.Code != http.StatusOK {
		t.Errorf("Expected a PNG for a pending action, got %d", w.Code)
	}
	if w = f.do("GET", "/api/self/v1/create-qr-code?action=missing", nil, localAddr); w.Code != http.StatusNotFound {
		t.Errorf("Expected status code 404, got %d", w.Code)
	}
	if w = f.do("GET", "/api/self/v1/create-qr-code", nil, localAddr); w.Code != http.StatusBadRequest {
		t.Errorf("Expected status code 400, got %d", w.Code)
	}
}

// TestUserStatus tests the status endpoint
func TestUserStatus(t *testing.T) {
	f := setupRouter()
	w := f.do("GET", "/api/self/v1/status", nil, localAddr)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code 200, got %d", w.Code)
	}
	var response map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response["running"] != true {
		t.Errorf("Expected running=true, got %v", response)
	}
	if _, ok := response["pending_dialogs"]; !ok {
		t.Error("Response should contain pending_dialogs")
	}
}

func TestParseSize(t *testing.T) {
	cases := map[string]int{"": 0, "200": 200, "300x300": 300, "abc": 0, "-5": 0}
	for in, want := range cases {
		if got := parseSize(in); got != want {
			t.Errorf("parseSize(%q) = %d, want %d", in, got, want)
		}
	}
}
