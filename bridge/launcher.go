package bridge

import (
	"fmt"
	"io"
	"os"

	"github.com/skip2/go-qrcode"

	"github.com/moyoez/sharekit/tool"
	"github.com/moyoez/sharekit/types"
)

// TerminalLauncher prints bridge URLs with a QR code so they can be opened
// on another device.
type TerminalLauncher struct {
	Out     io.Writer
	NoQR    bool
	QRLevel qrcode.RecoveryLevel
}

func NewTerminalLauncher() *TerminalLauncher {
	return &TerminalLauncher{Out: os.Stdout, QRLevel: qrcode.Medium}
}

func (l *TerminalLauncher) Launch(rawURL string, inApp bool, surface *types.Surface) error {
	out := l.Out
	if out == nil {
		out = os.Stdout
	}
	where := "browser"
	if inApp {
		where = "in-app browser"
	}
	if surface != nil && surface.Title != "" {
		where += " (" + surface.Title + ")"
	}
	tool.DefaultLogger.Infof("[Bridge] open in %s: %s", where, rawURL)

	if _, err := fmt.Fprintf(out, "Open in %s:\n%s\n", where, rawURL); err != nil {
		return err
	}
	if l.NoQR {
		return nil
	}
	code, err := qrcode.New(rawURL, l.QRLevel)
	if err != nil {
		// long URLs may not fit a QR code, the link itself is enough
		tool.DefaultLogger.Debugf("[Bridge] skipping QR code: %v", err)
		return nil
	}
	_, err = fmt.Fprintln(out, code.ToSmallString(false))
	return err
}
