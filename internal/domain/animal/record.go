package animal

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"

	"github.com/fourpaws/shelter-hub/internal/domain/shared"
)

// Record - плоское представление животного с тегом вида.
// Используется всеми адаптерами хранения.
type Record struct {
	Kind         Kind    `json:"kind"`
	Index        int     `json:"index"`
	Name         string  `json:"name"`
	Age          int     `json:"age"`
	Weight       float64 `json:"weight"`
	RunningSpeed int     `json:"running_speed,omitempty"`
	TailLength   int     `json:"tail_length,omitempty"`
}

// ToRecord переводит животное в Record.
func ToRecord(a Animal) (Record, error) {
	if a == nil {
		return Record{}, shared.ErrAnimalNil
	}

	r := Record{
		Kind:   a.Kind(),
		Index:  a.Index(),
		Name:   a.Name(),
		Age:    a.Age(),
		Weight: a.Weight(),
	}

	switch v := a.(type) {
	case *Dog:
		r.RunningSpeed = v.runningSpeed
	case *Cat:
		r.TailLength = v.tailLength
	default:
		return Record{}, shared.WrapError("animal", "Encode", shared.ErrInvalidFormat,
			"unsupported animal type", fmt.Errorf("%T", a))
	}

	return r, nil
}

// FromRecord восстанавливает животное конкретного вида.
func FromRecord(r Record) (Animal, error) {
	switch r.Kind {
	case KindDog:
		return NewDog(r.Name, r.Age, r.Weight, r.Index, r.RunningSpeed), nil
	case KindCat:
		return NewCat(r.Name, r.Age, r.Weight, r.Index, r.TailLength), nil
	default:
		return nil, shared.WrapError("animal", "Decode", shared.ErrInvalidFormat,
			"unknown animal kind", fmt.Errorf("kind %q", r.Kind))
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// STREAM CODEC
// ══════════════════════════════════════════════════════════════════════════════

// EncodeStream последовательно пишет записи всех животных в w.
func EncodeStream[T Animal](w io.Writer, animals []T) error {
	enc := gob.NewEncoder(w)
	for _, a := range animals {
		r, err := ToRecord(a)
		if err != nil {
			return err
		}
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode animal %d: %w", r.Index, err)
		}
	}
	return nil
}

// DecodeStream читает записи до конца потока.
func DecodeStream(r io.Reader) ([]Animal, error) {
	dec := gob.NewDecoder(r)
	var out []Animal
	for {
		var rec Record
		if err := dec.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return out, fmt.Errorf("decode animal #%d: %w", len(out), err)
		}
		a, err := FromRecord(rec)
		if err != nil {
			return out, err
		}
		out = append(out, a)
	}
}
