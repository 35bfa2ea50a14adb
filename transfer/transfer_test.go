package transfer

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/moyoez/sharekit/tool"
	"github.com/moyoez/sharekit/types"
)

func newPeer(t *testing.T, status int, body string) (*httptest.Server, *[]string) {
	t.Helper()
	var seen []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		seen = append(seen, r.Method+" "+r.URL.Path+" "+string(raw))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &seen
}

func TestSendBridgeRequestImmediate(t *testing.T) {
	server, seen := newPeer(t, http.StatusOK, `{"completionGesture":"post","postId":"9"}`)
	req := &types.BridgeRequest{ActionID: "a-1", Kind: types.ChannelKindNative, MethodName: "share"}

	body, err := SendBridgeRequest(context.Background(), server.URL, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body == nil || body.PostID != "9" || body.ActionID != "a-1" {
		t.Errorf("unexpected body %+v", body)
	}
	if len(*seen) != 1 || !strings.HasPrefix((*seen)[0], "POST "+tool.PeerBridgePath) {
		t.Errorf("expected a POST to the bridge path, got %v", *seen)
	}
	if !strings.Contains((*seen)[0], `"actionId":"a-1"`) {
		t.Errorf("request payload should carry the action id, got %s", (*seen)[0])
	}
}

func TestSendBridgeRequestAccepted(t *testing.T) {
	server, _ := newPeer(t, StatusAccepted, "")
	body, err := SendBridgeRequest(context.Background(), server.URL, &types.BridgeRequest{ActionID: "a-2"})
	if err != nil || body != nil {
		t.Errorf("expected accepted request to wait for the callback, got %+v, %v", body, err)
	}
}

func TestSendBridgeRequestStatusErrors(t *testing.T) {
	cases := []struct {
		status  int
		body    string
		message string
	}{
		{StatusAppVersionUnsupported, "", "peer app version does not support this request"},
		{StatusRejected, `{"error":"user declined"}`, "user declined"},
		{StatusTooManyRequests, "", "bridge request: too many requests"},
		{http.StatusTeapot, "", "bridge request failed: 418 I'm a teapot"},
	}
	for _, tc := range cases {
		server, _ := newPeer(t, tc.status, tc.body)
		_, err := SendBridgeRequest(context.Background(), server.URL, &types.BridgeRequest{ActionID: "a"})
		if err == nil {
			t.Fatalf("status %d: expected an error", tc.status)
		}
		if StatusCode(err) != tc.status {
			t.Errorf("status %d: StatusCode returned %d", tc.status, StatusCode(err))
		}
		if err.Error() != tc.message {
			t.Errorf("status %d: expected %q, got %q", tc.status, tc.message, err.Error())
		}
	}
}

func TestSendBridgeRequestInvalid(t *testing.T) {
	if _, err := SendBridgeRequest(context.Background(), "http://127.0.0.1:1", nil); err == nil {
		t.Error("nil request should fail")
	}
	if _, err := SendBridgeRequest(context.Background(), "not a url", &types.BridgeRequest{}); err == nil {
		t.Error("invalid peer URL should fail")
	}
	if StatusCode(nil) != 0 {
		t.Error("nil error has no status")
	}
}

func TestFetchPeerInfo(t *testing.T) {
	server, seen := newPeer(t, http.StatusOK, `{"alias":"peer","version":"3.1","schemes":["sharepeer","sharepeer-ext"]}`)
	info, err := FetchPeerInfo(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Alias != "peer" || len(info.Schemes) != 2 {
		t.Errorf("unexpected info %+v", info)
	}
	if !strings.HasPrefix((*seen)[0], "GET "+tool.PeerInfoPath) {
		t.Errorf("expected GET on the info path, got %v", *seen)
	}

	down, _ := newPeer(t, http.StatusServiceUnavailable, "")
	if _, err := FetchPeerInfo(context.Background(), down.URL); StatusCode(err) != http.StatusServiceUnavailable {
		t.Errorf("expected 503 status error, got %v", err)
	}
}

func TestStagerUploadsImages(t *testing.T) {
	var auth string
	var files int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		files = len(r.MultipartForm.File["file"])
		_, _ = w.Write([]byte(`{"uris":["staged://1","staged://2"]}`))
	}))
	defer server.Close()

	stager := NewStager(server.URL)
	token := &types.AccessToken{Token: "secret"}
	uris, err := stager.StageSync(context.Background(), [][]byte{[]byte("a"), []byte("b")}, token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(uris) != 2 || uris[0] != "staged://1" {
		t.Errorf("unexpected uris %v", uris)
	}
	if auth != "Bearer secret" || files != 2 {
		t.Errorf("expected bearer auth and 2 files, got %q and %d", auth, files)
	}

	done := make(chan error, 1)
	stager.Stage(context.Background(), [][]byte{[]byte("a"), []byte("b")}, token, func(uris []string, err error) {
		done <- err
	})
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("async stage failed: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Stage never called done")
	}
}

func TestStagerFailures(t *testing.T) {
	server, _ := newPeer(t, http.StatusUnauthorized, "")
	stager := NewStager(server.URL)
	token := &types.AccessToken{Token: "secret"}

	if _, err := stager.StageSync(context.Background(), [][]byte{[]byte("a")}, token); StatusCode(err) != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
	if _, err := stager.StageSync(context.Background(), [][]byte{[]byte("a")}, nil); err == nil {
		t.Error("missing token should fail")
	}
	if _, err := stager.StageSync(context.Background(), nil, token); err == nil {
		t.Error("no images should fail")
	}
	if _, err := (&Stager{}).StageSync(context.Background(), [][]byte{[]byte("a")}, token); err == nil {
		t.Error("unconfigured stager should fail")
	}

	short, _ := newPeer(t, http.StatusOK, `{"uris":["only-one"]}`)
	if _, err := NewStager(short.URL).StageSync(context.Background(), [][]byte{[]byte("a"), []byte("b")}, token); err == nil {
		t.Error("a uri count mismatch should fail")
	}
}
