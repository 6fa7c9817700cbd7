package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type DeviceType string

const (
	DeviceTypeWaterHeater    DeviceType = "water_heater"
	DeviceTypeVendingMachine DeviceType = "vending_machine"
)

type DeviceStatus string

const (
	DeviceStatusOnline      DeviceStatus = "ONLINE"
	DeviceStatusOffline     DeviceStatus = "OFFLINE"
	DeviceStatusMaintenance DeviceStatus = "MAINTENANCE"
)

// Device is a registered IoT unit (water heater, vending machine).
type Device struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name         string         `gorm:"column:name;not null" json:"name"`
	DeviceType   DeviceType     `gorm:"column:device_type;not null;index" json:"device_type"`
	Manufacturer string         `gorm:"column:manufacturer" json:"manufacturer"`
	ModelNumber  string         `gorm:"column:model_number" json:"model_number"`
	Location     string         `gorm:"column:location" json:"location"`
	Status       DeviceStatus   `gorm:"column:status;not null;default:OFFLINE" json:"status"`
	Metadata     datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`
	CreatedAt    time.Time      `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;not null;autoUpdateTime" json:"updated_at"`

	Readings []*DeviceReading `gorm:"foreignKey:DeviceID;references:ID;constraint:OnDelete:CASCADE" json:"readings,omitempty"`
}

func (Device) TableName() string { return "devices" }
