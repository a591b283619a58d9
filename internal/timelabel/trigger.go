package timelabel

import (
	"sync"
	"sync/atomic"
)

// Trigger binds a localizer to one document and runs it at most once.
//
// Hosts call Fire when their view is ready. The first call performs the
// pass; later calls do nothing and return nil. Elements inserted after the
// pass are not revisited.
type Trigger struct {
	localizer *Localizer
	doc       Document

	once sync.Once
	ran  atomic.Bool
	err  error
}

// NewTrigger returns a trigger that localizes doc with l.
func NewTrigger(l *Localizer, doc Document) *Trigger {
	return &Trigger{localizer: l, doc: doc}
}

// Fire runs the localizer the first time it is called.
//
// Only the first call reports the pass error; concurrent callers block until
// that pass has finished.
func (t *Trigger) Fire() error {
	first := false
	t.once.Do(func() {
		first = true
		t.err = t.localizer.Localize(t.doc)
		t.ran.Store(true)
	})
	if first {
		return t.err
	}
	return nil
}

// Ran reports whether the pass has run.
func (t *Trigger) Ran() bool {
	return t.ran.Load()
}
