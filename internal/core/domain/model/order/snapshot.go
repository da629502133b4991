package order

import (
	"encoding/json"
	"fmt"

	"bondi/internal/core/domain/model/kernel"
)

// snapshotDTO is the persisted form of an order.
type snapshotDTO struct {
	ID      string `json:"id"`
	Version int    `json:"version"`
	Volume  int    `json:"volume"`
	Status  string `json:"status"`
	Courier string `json:"courier,omitempty"`
}

func (o *Order) MarshalJSON() ([]byte, error) {
	if err := o.ensureHydrated(); err != nil {
		return nil, err
	}
	return json.Marshal(snapshotDTO{
		ID:      o.ID(),
		Version: o.Version(),
		Volume:  o.volume,
		Status:  o.status.String(),
		Courier: o.courier,
	})
}

// UnmarshalJSON replaces the state of o in place. When o already carries an
// identifier the snapshot must belong to the same order.
func (o *Order) UnmarshalJSON(data []byte) error {
	var dto snapshotDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return err
	}

	if o.ID() != "" && o.ID() != dto.ID {
		return fmt.Errorf("snapshot of order %q cannot be applied to order %q", dto.ID, o.ID())
	}

	id, err := kernel.IDFromString(dto.ID)
	if err != nil {
		return err
	}
	status, err := ParseStatus(dto.Status)
	if err != nil {
		return err
	}

	restored, err := RestoreOrder(id, dto.Version, dto.Volume, status, dto.Courier)
	if err != nil {
		return err
	}

	*o = *restored
	return nil
}
