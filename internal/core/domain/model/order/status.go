package order

import (
	"fmt"

	"bondi/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
//	Created -> Assigned -> Completed
//
// Unknown marks an order reference that has not been hydrated from storage yet.
type Status int

const (
	Unknown Status = iota
	Created
	Assigned
	Completed
)

var statusNames = map[Status]string{
	Unknown:   "Unknown",
	Created:   "Created",
	Assigned:  "Assigned",
	Completed: "Completed",
}

// ParseStatus maps a status name back to its value.
func ParseStatus(s string) (Status, error) {
	for st, name := range statusNames {
		if name == s && st != Unknown {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// Validate accepts every status a persisted order can be in.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// ValidateCanHaveCourier checks that the courier presence matches the status.
func (s Status) ValidateCanHaveCourier(courier bool) error {
	if courier && s != Assigned && s != Completed {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a courier", s),
		)
	}

	if !courier && (s == Assigned || s == Completed) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no courier", s),
		)
	}

	return nil
}

// Assign moves Created or Assigned orders to Assigned.
func (s Status) Assign() (Status, error) {
	if s != Created && s != Assigned {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to assign", s),
		)
	}
	return Assigned, nil
}

// Complete moves Assigned orders to Completed.
func (s Status) Complete() (Status, error) {
	if s != Assigned {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to complete", s),
		)
	}
	return Completed, nil
}

// CanChangeVolume reports whether the package volume may still change.
func (s Status) CanChangeVolume() bool {
	return s == Created
}
