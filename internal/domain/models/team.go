package models

// SlotKind selects which roster slot family an operation targets. Driver and
// constructor slots share the same shape but have independent position ranges
// and capacities.
type SlotKind string

const (
	SlotKindDriver      SlotKind = "driver"
	SlotKindConstructor SlotKind = "constructor"
)

type Team struct {
	TeamID      int    `db:"team_id" json:"team_id"`
	OwnerUserID int    `db:"owner_user_id" json:"owner_user_id"`
	TeamName    string `db:"team_name" json:"team_name"`

	DriverSlots      []DriverSlot      `db:"-" json:"driver_slots"`
	ConstructorSlots []ConstructorSlot `db:"-" json:"constructor_slots"`
}

type DriverSlot struct {
	TeamID       int    `db:"team_id" json:"team_id"`
	SlotPosition int    `db:"slot_position" json:"slot_position"`
	DriverID     int    `db:"driver_id" json:"driver_id"`
	DriverName   string `db:"driver_name" json:"driver_name,omitempty"`
}

type ConstructorSlot struct {
	TeamID          int    `db:"team_id" json:"team_id"`
	SlotPosition    int    `db:"slot_position" json:"slot_position"`
	ConstructorID   int    `db:"constructor_id" json:"constructor_id"`
	ConstructorName string `db:"constructor_name" json:"constructor_name,omitempty"`
}
