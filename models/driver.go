package models

import "github.com/uptrace/bun"

// Driver is a roster entry tips are validated against.
type Driver struct {
	bun.BaseModel `bun:"table:drivers,alias:d"`

	ID     int64  `bun:"id,pk,autoincrement" json:"id"`
	Name   string `bun:"name,notnull,unique" json:"name"`
	Team   string `bun:"team" json:"team,omitempty"`
	Number int    `bun:"number" json:"number,omitempty"`
}
