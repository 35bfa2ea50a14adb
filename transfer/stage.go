package transfer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/bytedance/sonic"
	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"

	"github.com/moyoez/sharekit/tool"
	"github.com/moyoez/sharekit/types"
)

// Stager uploads in-memory photos to the staging endpoint so web flows can
// reference them by URI.
type Stager struct {
	URL    string
	Client *http.Client
}

func NewStager(url string) *Stager {
	return &Stager{URL: url, Client: tool.GetHttpClient()}
}

// Stage uploads images in the background and calls done exactly once with
// the staged URIs, in upload order.
func (s *Stager) Stage(ctx context.Context, images [][]byte, token *types.AccessToken, done func(uris []string, err error)) {
	go func() {
		uris, err := s.StageSync(ctx, images, token)
		done(uris, err)
	}()
}

// StageSync is Stage without the goroutine.
func (s *Stager) StageSync(ctx context.Context, images [][]byte, token *types.AccessToken) ([]string, error) {
	if s.URL == "" {
		return nil, errors.New("staging endpoint is not configured")
	}
	if len(images) == 0 {
		return nil, errors.New("invalid parameters: no images to stage")
	}
	if !token.Valid() {
		return nil, errors.New("invalid parameters: staging needs a valid access token")
	}

	select {
	case <-ctx.Done():
		return nil, errors.Wrap(ctx.Err(), "staging cancelled")
	default:
	}

	body, contentType, err := encodeImages(images)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create staging request")
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token.Token)

	client := s.Client
	if client == nil {
		client = tool.GetHttpClient()
	}
	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(ctx.Err(), "staging cancelled")
		}
		return nil, errors.Wrap(err, "failed to send staging request")
	}
	defer tool.CloseBody(resp.Body)

	// check status code
	switch resp.StatusCode {
	case http.StatusBadRequest:
		return nil, &StatusError{Code: resp.StatusCode, Message: "staging failed: invalid body"}
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, &StatusError{Code: resp.StatusCode, Message: "staging failed: access token rejected"}
	case http.StatusRequestEntityTooLarge:
		return nil, &StatusError{Code: resp.StatusCode, Message: "staging failed: images too large"}
	default:
		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			return nil, &StatusError{Code: resp.StatusCode, Message: "staging failed: " + resp.Status}
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read staging response")
	}
	var staged types.StagedPhotos
	if err := sonic.Unmarshal(raw, &staged); err != nil {
		return nil, errors.Wrap(err, "failed to parse staging response")
	}
	if len(staged.URIs) != len(images) {
		return nil, errors.Errorf("staging returned %d uris for %d images", len(staged.URIs), len(images))
	}

	tool.DefaultLogger.Infof("Staged %d images at %s", len(images), s.URL)
	return staged.URIs, nil
}

func encodeImages(images [][]byte) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for i, image := range images {
		mtype := mimetype.Detect(image)
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="image-%d%s"`, i, mtype.Extension()))
		header.Set("Content-Type", mtype.String())
		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", errors.Wrap(err, "failed to create multipart section")
		}
		if _, err := part.Write(image); err != nil {
			return nil, "", errors.Wrap(err, "failed to write image")
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", errors.Wrap(err, "failed to finish multipart body")
	}
	return &buf, writer.FormDataContentType(), nil
}
