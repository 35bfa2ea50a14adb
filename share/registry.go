package share

import (
	"time"

	ttlworker "github.com/FloatTech/ttl"
)

const (
	// TransientTTL bounds how long an abandoned dialog is kept alive waiting
	// for its outcome.
	TransientTTL = 3600 * time.Second
)

// Dialogs awaiting an outcome are kept reachable here so callers may drop
// their own reference right after Show.
var transientDialogs = ttlworker.NewCache[string, *Dialog](TransientTTL)

func registerTransient(d *Dialog) {
	transientDialogs.Set(d.id, d)
}

func unregisterTransient(d *Dialog) {
	transientDialogs.Delete(d.id)
}

// PendingDialog looks up a dialog that is still waiting for its outcome.
func PendingDialog(id string) (*Dialog, bool) {
	d := transientDialogs.Get(id)
	return d, d != nil
}

// PendingDialogCount returns how many dialogs are waiting for an outcome.
func PendingDialogCount() int {
	n := 0
	_ = transientDialogs.Range(func(string, *Dialog) error {
		n++
		return nil
	})
	return n
}
