package event

import "testing"

func TestPublishOrder(t *testing.T) {
	bus := NewBus()
	var calls []string

	bus.Subscribe(OxygenChanged, func(e Event) { calls = append(calls, "display") })
	bus.Subscribe(OxygenChanged, func(e Event) { calls = append(calls, "audio") })
	bus.Subscribe(OxygenLow, func(e Event) { calls = append(calls, "low") })

	bus.Publish(Event{Type: OxygenChanged, Fraction: 0.5})

	if len(calls) != 2 || calls[0] != "display" || calls[1] != "audio" {
		t.Errorf("handlers should run in subscription order, got %v", calls)
	}
}

func TestUnsubscribe(t *testing.T) {
	bus := NewBus()
	count := 0

	id := bus.Subscribe(OxygenDepleted, func(e Event) { count++ })
	bus.Publish(Event{Type: OxygenDepleted})
	bus.Unsubscribe(id)
	bus.Publish(Event{Type: OxygenDepleted})

	if count != 1 {
		t.Errorf("handler called %d times, want 1", count)
	}

	// 未知句柄不应 panic
	bus.Unsubscribe(12345)
}

func TestSubscribeDuringPublish(t *testing.T) {
	bus := NewBus()
	late := 0

	bus.Subscribe(RefillGranted, func(e Event) {
		bus.Subscribe(RefillGranted, func(e Event) { late++ })
	})

	bus.Publish(Event{Type: RefillGranted})
	if late != 0 {
		t.Errorf("subscriber added during publish should not run in the same publish, ran %d times", late)
	}

	bus.Publish(Event{Type: RefillGranted})
	if late != 1 {
		t.Errorf("late subscriber should run on next publish, ran %d times", late)
	}
}

func TestNilBusPublish(t *testing.T) {
	var bus *Bus
	bus.Publish(Event{Type: OxygenChanged})
}
