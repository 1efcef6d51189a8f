package coordinator

import "sync"

type event struct {
	state State
	err   error
}

// notifier delivers OnChange/OnError in order on its own goroutine, so a
// slow callback delays only later callbacks and never the Run loop.
type notifier struct {
	onChange func(State)
	onError  func(error)

	mu      sync.Mutex
	pending []event
	wake    chan struct{}
}

func newNotifier(onChange func(State), onError func(error)) *notifier {
	return &notifier{
		onChange: onChange,
		onError:  onError,
		wake:     make(chan struct{}, 1),
	}
}

func (n *notifier) changed(s State) {
	if n.onChange != nil {
		n.push(event{state: s})
	}
}

func (n *notifier) failed(err error) {
	if n.onError != nil {
		n.push(event{err: err})
	}
}

func (n *notifier) push(e event) {
	n.mu.Lock()
	n.pending = append(n.pending, e)
	n.mu.Unlock()
	select {
	case n.wake <- struct{}{}:
	default:
	}
}

func (n *notifier) take() []event {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.pending
	n.pending = nil
	return out
}

// run delivers until stop is closed, then flushes what is left.
func (n *notifier) run(stop <-chan struct{}) {
	for {
		select {
		case <-n.wake:
			n.deliver(n.take())
		case <-stop:
			n.deliver(n.take())
			return
		}
	}
}

func (n *notifier) deliver(events []event) {
	for _, e := range events {
		if e.err != nil {
			n.onError(e.err)
		} else {
			n.onChange(e.state)
		}
	}
}
