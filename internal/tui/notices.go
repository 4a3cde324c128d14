package tui

import "sync"

// notices is the TUI-side fetch.Notifier. Coordinator calls may come from
// command goroutines, so appends are locked; the model drains on its own
// update loop, which keeps consumption single-threaded.
type notices struct {
	mu    sync.Mutex
	queue []notice
}

type notice struct {
	text  string
	isErr bool
}

func newNotices() *notices { return &notices{} }

func (n *notices) Notify(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.queue = append(n.queue, notice{text: msg})
}

func (n *notices) NotifyError(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.queue = append(n.queue, notice{text: msg, isErr: true})
}

// drain returns and clears all pending notices, oldest first.
func (n *notices) drain() []notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.queue
	n.queue = nil
	return out
}
