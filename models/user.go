package models

import "github.com/uptrace/bun"

// User roles. Admins manage races, drivers and official results.
const (
	RoleAdmin  = "admin"
	RolePlayer = "player"
)

// User is a league member with bcrypt-hashed password and profile fields.
// BasePoints is a persisted season offset; the displayed total adds the
// computed score over all closed races.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int64  `bun:"id,pk,autoincrement" json:"id"`
	Username     string `bun:"username,notnull,unique" json:"username"`
	Password     string `bun:"password,notnull" json:"-"`
	Role         string `bun:"role,notnull,default:'player'" json:"role"`
	DisplayName  string `bun:"display_name" json:"displayName"`
	Email        string `bun:"email" json:"email"`
	FavoriteTeam string `bun:"favorite_team" json:"favoriteTeam"`
	Country      string `bun:"country" json:"country"`
	Bio          string `bun:"bio" json:"bio"`
	BasePoints   int    `bun:"base_points,notnull,default:0" json:"-"`
}
