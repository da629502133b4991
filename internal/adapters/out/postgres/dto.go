package postgres

import (
	"time"

	"bondi/internal/adapters/out/snapshot"

	"gorm.io/datatypes"
)

// SnapshotDTO is the table row for one aggregate snapshot.
type SnapshotDTO struct {
	ID       string         `gorm:"primaryKey"`
	Type     string         `gorm:"not null"`
	Version  int            `gorm:"not null"`
	Data     datatypes.JSON `gorm:"not null"`
	StoredAt time.Time      `gorm:"not null"`
}

// TableName is the default table; WithTable overrides it per storage.
func (SnapshotDTO) TableName() string {
	return DefaultTable
}

func fromRecord(rec snapshot.Record) SnapshotDTO {
	return SnapshotDTO{
		ID:       rec.ID,
		Type:     rec.Type,
		Version:  rec.Version,
		Data:     datatypes.JSON(rec.Data),
		StoredAt: rec.StoredAt,
	}
}

func toRecord(dto SnapshotDTO) snapshot.Record {
	return snapshot.Record{
		ID:       dto.ID,
		Type:     dto.Type,
		Version:  dto.Version,
		Data:     []byte(dto.Data),
		StoredAt: dto.StoredAt,
	}
}
