package clock

import (
	"slices"
	"sync"

	"github.com/mmcdole/scrub/internal/domain"
	"github.com/samber/lo"
)

// Observers is a registration list of clock observers. Each registration
// gets its own unsubscribe func; unsubscribing twice is harmless.
type Observers struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]domain.ClockObserver
}

// NewObservers creates an empty list.
func NewObservers() *Observers {
	return &Observers{subs: make(map[int]domain.ClockObserver)}
}

// Add registers an observer and returns the func that removes it.
func (o *Observers) Add(observer domain.ClockObserver) func() {
	o.mu.Lock()
	defer o.mu.Unlock()

	id := o.nextID
	o.nextID++
	o.subs[id] = observer

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			delete(o.subs, id)
			o.mu.Unlock()
		})
	}
}

// Notify delivers the event to every observer, in registration order.
// Observers may unsubscribe from inside the callback.
func (o *Observers) Notify(event domain.ClockEvent) {
	o.mu.Lock()
	ids := lo.Keys(o.subs)
	o.mu.Unlock()

	slices.Sort(ids)
	for _, id := range ids {
		o.mu.Lock()
		obs, ok := o.subs[id]
		o.mu.Unlock()
		if ok {
			obs.OnClockEvent(event)
		}
	}
}

// Len returns the number of registered observers.
func (o *Observers) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.subs)
}
