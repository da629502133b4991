// Package snapshot converts aggregates to and from the serialized records
// every storage adapter persists.
//
// Aggregates take part by implementing json.Marshaler and json.Unmarshaler;
// Decode unmarshals into the existing instance, so restoring is in place.
package snapshot

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"bondi/internal/core/domain/model/aggregate"
	"bondi/internal/pkg/errs"
)

// Record is the stored form of one aggregate.
type Record struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	Version  int             `json:"version"`
	Data     json.RawMessage `json:"data"`
	StoredAt time.Time       `json:"stored_at"`
}

type versioned interface {
	Version() int
}

// TypeOf returns the storage type name of agg.
func TypeOf(agg aggregate.Aggregate) string {
	if typed, ok := agg.(aggregate.Typed); ok {
		return typed.AggregateType()
	}
	t := reflect.TypeOf(agg)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.String()
}

// Encode captures the full current state of agg.
func Encode(agg aggregate.Aggregate) (Record, error) {
	id := agg.Root().ID()

	data, err := json.Marshal(agg)
	if err != nil {
		return Record{}, errs.NewStorageFailureErrorWithCause("encode", id, err)
	}

	rec := Record{
		ID:       id,
		Type:     TypeOf(agg),
		Data:     data,
		StoredAt: time.Now().UTC(),
	}
	if v, ok := agg.(versioned); ok {
		rec.Version = v.Version()
	}
	return rec, nil
}

// Decode replaces the state of agg with the one captured in rec.
func Decode(rec Record, agg aggregate.Aggregate) error {
	id := agg.Root().ID()

	if rec.ID != id {
		return errs.NewStorageFailureErrorWithCause("decode", id,
			fmt.Errorf("record belongs to %q", rec.ID))
	}
	if want := TypeOf(agg); rec.Type != want {
		return errs.NewStorageFailureErrorWithCause("decode", id,
			fmt.Errorf("record type %q does not match %q", rec.Type, want))
	}

	if err := json.Unmarshal(rec.Data, agg); err != nil {
		return errs.NewStorageFailureErrorWithCause("decode", id, err)
	}
	return nil
}

// Marshal encodes agg into a self-describing document, suitable for
// key-value and file stores.
func Marshal(agg aggregate.Aggregate) ([]byte, error) {
	rec, err := Encode(agg)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, errs.NewStorageFailureErrorWithCause("encode", rec.ID, err)
	}
	return data, nil
}

// Unmarshal is the inverse of Marshal.
func Unmarshal(data []byte, agg aggregate.Aggregate) error {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return errs.NewStorageFailureErrorWithCause("decode", agg.Root().ID(), err)
	}
	return Decode(rec, agg)
}
