package score

import "sync"

// Channel names under which surfaces may subscribe. The web client grew two
// event names over time; both are aliases of the same stream here and exist
// only so callers keep working unchanged.
const (
	ChannelCanonical    = "score"
	ChannelLegacyScore  = "score.updated"
	ChannelLegacyUpdate = "globetrotter.score.update"
)

// Bus fans score-changed notifications out to in-process subscribers.
// Delivery is in subscription order per publish. There is no replay: a
// subscriber never observes publishes that predate its subscription.
type Bus struct {
	mu          sync.Mutex
	subscribers []chan float64
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe attaches a listener under the given channel name. All recognized
// aliases share the single underlying stream; the name does not partition
// delivery. The cancel func must be called to avoid leaks.
func (b *Bus) Subscribe(channel string) (<-chan float64, func()) {
	_ = channel // compatibility only; every alias is the same stream

	ch := make(chan float64, 8)
	b.mu.Lock()
	b.subscribers = append(b.subscribers, ch)
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, sub := range b.subscribers {
			if sub == ch {
				b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
				close(ch)
				return
			}
		}
	}
	return ch, cancel
}

// Publish delivers value to every current subscriber in subscription order.
// A full subscriber buffer drops its oldest pending value so a stalled
// consumer cannot block the publisher.
func (b *Bus) Publish(value float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subscribers {
		select {
		case ch <- value:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- value
		}
	}
}
