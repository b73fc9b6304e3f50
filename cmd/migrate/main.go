// cmd/migrate/main.go
// Migrates data from a legacy MySQL f1tipp deployment into the local
// PostgreSQL database. The legacy app stored race documents and tip orders as
// JSON blobs; they are normalized into typed columns on the way across.
//
// Usage:
//
//	MYSQL_DSN="user:pass@tcp(host:3306)/f1tipp?parseTime=true" \
//	DB_PASS="pgpass" \
//	go run ./cmd/migrate
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/uptrace/bun"

	"github.com/lucamueller/f1tipp/config"
	bundb "github.com/lucamueller/f1tipp/db"
	"github.com/lucamueller/f1tipp/models"
	"github.com/lucamueller/f1tipp/scoring"
)

const batchSize = 500

func main() {
	ctx := context.Background()

	cfg := config.Load()

	// --- MySQL ---
	if cfg.MySQLDSN == "" {
		log.Fatal("MYSQL_DSN required, e.g.: user:pass@tcp(host:3306)/f1tipp?parseTime=true")
	}
	myDB, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("open mysql: %v", err)
	}
	defer myDB.Close()
	myDB.SetMaxOpenConns(4)
	if err := myDB.PingContext(ctx); err != nil {
		log.Fatalf("ping mysql: %v", err)
	}
	log.Println("connected to MySQL")

	// --- PostgreSQL ---
	pgDB := bundb.Setup(cfg)
	defer pgDB.Close()
	log.Println("connected to PostgreSQL")

	// Create tables (idempotent)
	if err := bundb.CreateTables(ctx, pgDB); err != nil {
		log.Fatalf("create tables: %v", err)
	}

	// Disable FK enforcement so we can load in bulk without strict ordering
	if _, err := pgDB.ExecContext(ctx, "SET session_replication_role = 'replica'"); err != nil {
		log.Fatalf("disable FK: %v", err)
	}
	defer func() {
		if _, err := pgDB.ExecContext(ctx, "SET session_replication_role = 'origin'"); err != nil {
			log.Printf("re-enable FK: %v", err)
		}
	}()

	steps := []struct {
		name string
		fn   func() (int, error)
	}{
		{"users", func() (int, error) { return migrateUsers(ctx, myDB, pgDB) }},
		{"drivers", func() (int, error) { return migrateDrivers(ctx, myDB, pgDB) }},
		{"races", func() (int, error) { return migrateRaces(ctx, myDB, pgDB) }},
		{"tips", func() (int, error) { return migrateTips(ctx, myDB, pgDB) }},
	}

	for _, s := range steps {
		n, err := s.fn()
		if err != nil {
			log.Fatalf("migrate %s: %v", s.name, err)
		}
		log.Printf("%-10s  %d rows migrated", s.name, n)
	}

	resetSequences(ctx, pgDB)
	log.Println("migration complete")
}

// --- helpers ---

func nullStr(n sql.NullString) string {
	if !n.Valid {
		return ""
	}
	return n.String
}

// bulkInsert inserts a batch, skipping rows that already exist (idempotent re-runs).
func bulkInsert[T any](ctx context.Context, pgDB *bun.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	_, err := pgDB.NewInsert().Model(&rows).On("CONFLICT DO NOTHING").Exec(ctx)
	return err
}

// decodeRecord unmarshals a legacy JSON document, tolerating NULL columns.
func decodeRecord(raw []byte) map[string]any {
	if len(raw) == 0 {
		return map[string]any{}
	}
	var rec map[string]any
	if err := json.Unmarshal(raw, &rec); err != nil || rec == nil {
		return map[string]any{}
	}
	return rec
}

// --- per-table migrations ---

func migrateUsers(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	rows, err := myDB.QueryContext(ctx,
		`SELECT id, username, password, role, displayName, email,
		        favoriteTeam, country, bio, basePoints
		 FROM users`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var batch []models.User
	total := 0
	for rows.Next() {
		var (
			id           int64
			username     string
			password     string
			role         sql.NullString
			displayName  sql.NullString
			email        sql.NullString
			favoriteTeam sql.NullString
			country      sql.NullString
			bio          sql.NullString
			basePoints   sql.NullInt64
		)
		if err := rows.Scan(&id, &username, &password, &role, &displayName,
			&email, &favoriteTeam, &country, &bio, &basePoints); err != nil {
			return total, err
		}

		u := models.User{
			ID:           id,
			Username:     username,
			Password:     password,
			Role:         nullStr(role),
			DisplayName:  nullStr(displayName),
			Email:        nullStr(email),
			FavoriteTeam: nullStr(favoriteTeam),
			Country:      nullStr(country),
			Bio:          nullStr(bio),
			BasePoints:   int(basePoints.Int64),
		}
		if u.Role != models.RoleAdmin {
			u.Role = models.RolePlayer
		}
		if u.DisplayName == "" {
			u.DisplayName = u.Username
		}

		batch = append(batch, u)
		if len(batch) >= batchSize {
			if err := bulkInsert(ctx, pgDB, batch); err != nil {
				return total, err
			}
			total += len(batch)
			batch = batch[:0]
		}
	}
	if err := bulkInsert(ctx, pgDB, batch); err != nil {
		return total, err
	}
	return total + len(batch), rows.Err()
}

func migrateDrivers(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	rows, err := myDB.QueryContext(ctx,
		"SELECT id, name, team, number FROM drivers")
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var batch []models.Driver
	total := 0
	for rows.Next() {
		var (
			id     int64
			name   string
			team   sql.NullString
			number sql.NullInt64
		)
		if err := rows.Scan(&id, &name, &team, &number); err != nil {
			return total, err
		}
		batch = append(batch, models.Driver{
			ID:     id,
			Name:   name,
			Team:   nullStr(team),
			Number: int(number.Int64),
		})
		if len(batch) >= batchSize {
			if err := bulkInsert(ctx, pgDB, batch); err != nil {
				return total, err
			}
			total += len(batch)
			batch = batch[:0]
		}
	}
	if err := bulkInsert(ctx, pgDB, batch); err != nil {
		return total, err
	}
	return total + len(batch), rows.Err()
}

func migrateRaces(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	rows, err := myDB.QueryContext(ctx, "SELECT id, data FROM races")
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var batch []models.Race
	total := 0
	for rows.Next() {
		var (
			id   int64
			data []byte
		)
		if err := rows.Scan(&id, &data); err != nil {
			return total, err
		}

		rec := scoring.RaceFromRecord(decodeRecord(data))
		race := models.Race{
			ID:           id,
			Name:         rec.Name,
			Track:        rec.Track,
			Weather:      rec.Weather,
			Tyres:        rec.Tyres,
			Status:       rec.Status,
			ResultsOrder: rec.ResultsOrder,
		}
		if rec.Date != "" {
			d := rec.Date
			race.Date = &d
		}

		batch = append(batch, race)
		if len(batch) >= batchSize {
			if err := bulkInsert(ctx, pgDB, batch); err != nil {
				return total, err
			}
			total += len(batch)
			batch = batch[:0]
		}
	}
	if err := bulkInsert(ctx, pgDB, batch); err != nil {
		return total, err
	}
	return total + len(batch), rows.Err()
}

func migrateTips(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	rows, err := myDB.QueryContext(ctx,
		"SELECT id, userID, raceID, data, updatedAt FROM tips")
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var batch []models.Tip
	total := 0
	for rows.Next() {
		var (
			id        int64
			userID    int64
			raceID    int64
			data      []byte
			updatedAt sql.NullTime
		)
		if err := rows.Scan(&id, &userID, &raceID, &data, &updatedAt); err != nil {
			return total, err
		}

		rec := scoring.TipFromRecord(decodeRecord(data))
		if len(rec.Order) == 0 {
			continue
		}
		tip := models.Tip{
			ID:     id,
			UserID: userID,
			RaceID: raceID,
			Order:  rec.Order,
		}
		if updatedAt.Valid {
			tip.UpdatedAt = updatedAt.Time.UTC()
		} else if rec.UpdatedAt != "" {
			if at, err := time.Parse(time.RFC3339, rec.UpdatedAt); err == nil {
				tip.UpdatedAt = at.UTC()
			}
		}

		batch = append(batch, tip)
		if len(batch) >= batchSize {
			if err := bulkInsert(ctx, pgDB, batch); err != nil {
				return total, err
			}
			total += len(batch)
			batch = batch[:0]
		}
	}
	if err := bulkInsert(ctx, pgDB, batch); err != nil {
		return total, err
	}
	return total + len(batch), rows.Err()
}

// resetSequences advances each PG sequence to MAX(id) so new inserts don't conflict.
func resetSequences(ctx context.Context, pgDB *bun.DB) {
	seqs := []struct{ seq, table, col string }{
		{"users_id_seq", "users", "id"},
		{"drivers_id_seq", "drivers", "id"},
		{"races_id_seq", "races", "id"},
		{"tips_id_seq", "tips", "id"},
	}
	for _, s := range seqs {
		q := fmt.Sprintf(
			"SELECT setval('%s', COALESCE((SELECT MAX(%s) FROM %s), 1))",
			s.seq, s.col, s.table,
		)
		if _, err := pgDB.ExecContext(ctx, q); err != nil {
			log.Printf("reset seq %s: %v", s.seq, err)
		}
	}
	log.Println("sequences reset")
}
