// Package scoring implements the tip-scoring and leaderboard core: comparing a
// player's predicted finishing order against a race's official results,
// aggregating per-race scores into season stats, and ranking players.
//
// Everything in this package is pure computation over immutable snapshots.
// Nothing here touches storage, and every function is total: malformed input
// degrades to empty/zero values instead of errors.
package scoring

import "strconv"

// Race statuses. Only voting races accept tips; only closed races are scored.
const (
	StatusOpen   = "open"
	StatusVoting = "voting"
	StatusClosed = "closed"
)

// Race is the canonical race shape consumed by the scorer and aggregator.
type Race struct {
	ID           string
	Name         string
	Track        string
	Date         string // YYYY-MM-DD, empty when unscheduled
	Weather      string
	Tyres        string
	Status       string
	ResultsOrder []string
}

// Tip is one player's predicted top-10 for a single race.
type Tip struct {
	RaceID    string
	Order     []string
	UpdatedAt string
}

// RaceFromRecord builds a canonical Race from a loosely-typed record, e.g. a
// decoded JSON object from a legacy store. IDs may be numbers or strings,
// name/track fall back to each other, and a missing or non-array results
// field becomes an empty slice so downstream code never needs nil checks.
func RaceFromRecord(rec map[string]any) Race {
	name := recString(rec, "name", "track")
	track := recString(rec, "track", "name")
	if name == "" {
		name = "Unnamed Race"
	}
	if track == "" {
		track = "Unknown Track"
	}

	status := recString(rec, "status")
	if status == "" {
		status = StatusOpen
	}

	weather := recString(rec, "weather")
	if weather == "" {
		weather = "sunny"
	}

	return Race{
		ID:           recID(rec, "id", "raceId", "race_id"),
		Name:         name,
		Track:        track,
		Date:         recString(rec, "date"),
		Weather:      weather,
		Tyres:        recString(rec, "tyres"),
		Status:       status,
		ResultsOrder: NormalizeOrder(firstValue(rec, "resultsOrder", "results_order")),
	}
}

// RacesFromRecords normalizes a slice of race records, dropping nils.
func RacesFromRecords(recs []map[string]any) []Race {
	out := make([]Race, 0, len(recs))
	for _, rec := range recs {
		if rec == nil {
			continue
		}
		out = append(out, RaceFromRecord(rec))
	}
	return out
}

// TipFromRecord builds a canonical Tip from a loosely-typed record.
func TipFromRecord(rec map[string]any) Tip {
	return Tip{
		RaceID:    recID(rec, "raceId", "race_id", "id"),
		Order:     NormalizeOrder(firstValue(rec, "order", "tip_order", "tipOrder")),
		UpdatedAt: recString(rec, "updatedAt", "updated_at"),
	}
}

// NormalizeOrder coerces an arbitrary value into a driver-name slice: blank
// entries are dropped and anything that is not a string sequence yields an
// empty (never nil) slice.
func NormalizeOrder(v any) []string {
	switch seq := v.(type) {
	case []string:
		out := make([]string, 0, len(seq))
		for _, s := range seq {
			if s != "" {
				out = append(out, s)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(seq))
		for _, e := range seq {
			if s, ok := e.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}

func firstValue(rec map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := rec[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func recString(rec map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := rec[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// recID stringifies an identifier that may arrive as a JSON number or string.
func recID(rec map[string]any, keys ...string) string {
	for _, k := range keys {
		switch v := rec[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatInt(int64(v), 10)
		case int:
			return strconv.Itoa(v)
		case int64:
			return strconv.FormatInt(v, 10)
		}
	}
	return ""
}
