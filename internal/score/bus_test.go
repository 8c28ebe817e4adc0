package score

import "testing"

func TestPublishReachesAllAliases(t *testing.T) {
	bus := NewBus()

	canonical, cancel1 := bus.Subscribe(ChannelCanonical)
	defer cancel1()
	legacy, cancel2 := bus.Subscribe(ChannelLegacyUpdate)
	defer cancel2()

	bus.Publish(3.5)

	if got := <-canonical; got != 3.5 {
		t.Fatalf("canonical subscriber got %v, want 3.5", got)
	}
	if got := <-legacy; got != 3.5 {
		t.Fatalf("legacy subscriber got %v, want 3.5", got)
	}
}

func TestSubscribeAfterPublishSeesNothing(t *testing.T) {
	bus := NewBus()
	bus.Publish(7)

	ch, cancel := bus.Subscribe(ChannelCanonical)
	defer cancel()

	select {
	case v := <-ch:
		t.Fatalf("late subscriber observed stale publish %v", v)
	default:
	}
}

func TestPublishDropsOldestWhenSubscriberStalls(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe(ChannelCanonical)
	defer cancel()

	// Overfill the buffer; publisher must not block.
	for i := 0; i < 20; i++ {
		bus.Publish(float64(i))
	}

	// The newest value is always retained.
	var last float64
	for {
		select {
		case v := <-ch:
			last = v
			continue
		default:
		}
		break
	}
	if last != 19 {
		t.Fatalf("expected newest value 19 retained, got %v", last)
	}
}

func TestCancelStopsDelivery(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe(ChannelLegacyScore)
	cancel()

	bus.Publish(1)

	if _, ok := <-ch; ok {
		t.Fatalf("expected closed channel after cancel")
	}
}
