package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// JSONB round-trips raw JSON through a postgres jsonb column.
type JSONB []byte

func (j JSONB) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return string(j), nil
}

func (j *JSONB) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*j = nil
	case []byte:
		*j = append((*j)[:0], v...)
	case string:
		*j = []byte(v)
	default:
		return fmt.Errorf("unsupported jsonb source %T", value)
	}
	return nil
}

func (JSONB) GormDataType() string { return "jsonb" }

// Simulation holds one world aggregate per row. The version column duplicates
// the version inside the state blob; the column is the one optimistic updates
// compare against.
type Simulation struct {
	SimulationID string    `gorm:"column:simulation_id;primaryKey"`
	Name         string    `gorm:"column:name"`
	State        JSONB     `gorm:"column:state"`
	Version      int64     `gorm:"column:version"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (Simulation) TableName() string { return "simulations" }

type OperatorCredential struct {
	SimulationID string    `gorm:"column:simulation_id;primaryKey"`
	KeySalt      []byte    `gorm:"column:key_salt"`
	KeyHash      []byte    `gorm:"column:key_hash"`
	Status       string    `gorm:"column:status"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (OperatorCredential) TableName() string { return "operator_credentials" }

type LedgerEntry struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement"`
	SimulationID string    `gorm:"column:simulation_id"`
	Source       string    `gorm:"column:source"`
	Destination  string    `gorm:"column:destination"`
	Amount       int       `gorm:"column:amount"`
	Reason       string    `gorm:"column:reason"`
	Tick         int64     `gorm:"column:tick"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (LedgerEntry) TableName() string { return "ledger_entries" }
