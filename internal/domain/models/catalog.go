package models

type Driver struct {
	DriverID        int    `db:"driver_id" json:"driver_id"`
	DriverName      string `db:"driver_name" json:"driver_name"`
	ConstructorName string `db:"constructor_name" json:"constructor_name"`
}

type Constructor struct {
	ConstructorID   int    `db:"constructor_id" json:"constructor_id"`
	ConstructorName string `db:"constructor_name" json:"constructor_name"`
}
