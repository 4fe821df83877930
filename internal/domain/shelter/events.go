package shelter

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/fourpaws/shelter-hub/internal/domain/animal"
	"github.com/fourpaws/shelter-hub/internal/domain/shared"
)

// Sender is whatever raised an adoption. Handlers only need its name.
type Sender interface {
	Name() string
}

// AdoptionHandler is invoked synchronously for every adoption.
type AdoptionHandler func(sender Sender, event AdoptionEvent) error

// AdoptionEvent is emitted when an animal leaves the shelter with a new owner.
type AdoptionEvent struct {
	shared.BaseEvent
	Animal      animal.Animal `json:"-"`
	OwnerName   string        `json:"owner_name"`
	ShelterName string        `json:"shelter_name"`
}

// NewAdoptionEvent creates a new AdoptionEvent.
func NewAdoptionEvent(a animal.Animal, ownerName, shelterName string) AdoptionEvent {
	return AdoptionEvent{
		BaseEvent:   shared.NewBaseEvent(uuid.NewString(), shared.EventAnimalAdopted, strconv.Itoa(a.Index())),
		Animal:      a,
		OwnerName:   ownerName,
		ShelterName: shelterName,
	}
}

// Payload implements shared.Event.
func (e AdoptionEvent) Payload() map[string]interface{} {
	p := map[string]interface{}{
		"event_id":     e.ID,
		"owner_name":   e.OwnerName,
		"shelter_name": e.ShelterName,
	}
	if e.Animal != nil {
		p["animal_index"] = e.Animal.Index()
		p["animal_name"] = e.Animal.Name()
		p["animal_kind"] = e.Animal.Kind().String()
	}
	return p
}

// Forward returns a handler that republishes adoptions on an event bus.
func Forward(pub shared.EventPublisher) AdoptionHandler {
	return func(_ Sender, event AdoptionEvent) error {
		return pub.Publish(event)
	}
}

// AdoptionFromEvent rebuilds the parts of an adoption that survive transport.
// Events coming from another instance carry no animal, only its payload fields.
func AdoptionFromEvent(event shared.Event) (AdoptionEvent, bool) {
	if event.EventType() != shared.EventAnimalAdopted {
		return AdoptionEvent{}, false
	}
	if e, ok := event.(AdoptionEvent); ok {
		return e, true
	}

	p := event.Payload()
	e := AdoptionEvent{
		BaseEvent: shared.BaseEvent{
			ID:          shared.PayloadString(p, "event_id"),
			Type:        event.EventType(),
			Timestamp:   event.OccurredAt(),
			AggregateId: event.AggregateID(),
			Version:     1,
		},
		OwnerName:   shared.PayloadString(p, "owner_name"),
		ShelterName: shared.PayloadString(p, "shelter_name"),
	}

	idx, ok := shared.PayloadInt(p, "animal_index")
	if !ok {
		return e, true
	}
	// Only identity, name and kind travel; age and weight stay zero.
	a, err := animal.FromRecord(animal.Record{
		Kind:  animal.Kind(shared.PayloadString(p, "animal_kind")),
		Index: idx,
		Name:  shared.PayloadString(p, "animal_name"),
	})
	if err == nil {
		e.Animal = a
	}
	return e, true
}
