package models

import "github.com/uptrace/bun"

// Race is one event of the season. ResultsOrder holds the official finishing
// order (winner first) and is only meaningful once Status is closed.
type Race struct {
	bun.BaseModel `bun:"table:races,alias:rc"`

	ID           int64    `bun:"id,pk,autoincrement" json:"id"`
	Name         string   `bun:"name,notnull" json:"name"`
	Track        string   `bun:"track,notnull" json:"track"`
	Date         *string  `bun:"date,type:date" json:"date"`
	Weather      string   `bun:"weather,notnull,default:'sunny'" json:"weather"`
	Tyres        string   `bun:"tyres" json:"tyres,omitempty"`
	Status       string   `bun:"status,notnull,default:'open'" json:"status"`
	ResultsOrder []string `bun:"results_order,array" json:"resultsOrder"`
}
