package share

import (
	"os"
	"slices"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/moyoez/sharekit/tool"
)

const defaultVideoExt = ".mov"

// tracker owns the temporary files a dialog writes while staging video bytes.
type tracker struct {
	mu    sync.Mutex
	fs    afero.Fs
	dir   string
	files []string
}

func newTracker(fs afero.Fs, dir string) *tracker {
	return &tracker{fs: fs, dir: dir}
}

// stage writes data to a new temporary file and tracks it for cleanup.
func (t *tracker) stage(data []byte) (string, error) {
	ext := mimetype.Detect(data).Extension()
	if ext == "" {
		ext = defaultVideoExt
	}
	if err := t.fs.MkdirAll(t.dir, 0o700); err != nil {
		return "", errors.Wrap(err, "failed to create staging directory")
	}
	f, err := afero.TempFile(t.fs, t.dir, "sharekit-video-*"+ext)
	if err != nil {
		return "", errors.Wrap(err, "failed to create staging file")
	}
	path := f.Name()
	_, writeErr := f.Write(data)
	closeErr := f.Close()
	if writeErr != nil || closeErr != nil {
		_ = t.fs.Remove(path)
		if writeErr == nil {
			writeErr = closeErr
		}
		return "", errors.Wrap(writeErr, "failed to write staging file")
	}

	t.mu.Lock()
	t.files = append(t.files, path)
	t.mu.Unlock()
	tool.DefaultLogger.Debugf("[Share] staged %d bytes of video at %s", len(data), path)
	return path, nil
}

func (t *tracker) list() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.files)
}

// cleanup removes every tracked file. Failures are logged and ignored.
func (t *tracker) cleanup() {
	t.mu.Lock()
	files := t.files
	t.files = nil
	t.mu.Unlock()

	for _, path := range files {
		if err := t.fs.Remove(path); err != nil && !os.IsNotExist(err) {
			tool.DefaultLogger.Debugf("[Share] failed to remove staged file %s: %v", path, err)
		}
	}
}
