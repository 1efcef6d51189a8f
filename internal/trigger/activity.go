package trigger

// Activity is a coalescing, non-blocking notification. Any number of
// Notify calls between two receives collapse into one.
//
// Notify runs inside the global input hook, so it must never block.
type Activity struct {
	ch chan struct{}
}

func NewActivity() *Activity {
	return &Activity{ch: make(chan struct{}, 1)}
}

func (a *Activity) Notify() {
	select {
	case a.ch <- struct{}{}:
	default:
	}
}

func (a *Activity) C() <-chan struct{} { return a.ch }
