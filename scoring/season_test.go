package scoring

import "testing"

func closedRace(id, date string, results []string, tip []string) ClosedRace {
	cr := ClosedRace{
		Race: Race{ID: id, Name: id, Track: id, Date: date, Status: StatusClosed, ResultsOrder: results},
	}
	if tip != nil {
		cr.Tip = &Tip{RaceID: id, Order: tip}
	}
	return cr
}

func TestAggregateSeason_NoClosedRaces(t *testing.T) {
	stats := AggregateSeason(50, nil)

	if stats.Points != 50 {
		t.Errorf("Points = %d, want 50", stats.Points)
	}
	if stats.Form != 0 {
		t.Errorf("Form = %d, want 0", stats.Form)
	}
	if stats.LastRacePoints != 10 {
		t.Errorf("LastRacePoints = %d, want 10 (points/5 fallback)", stats.LastRacePoints)
	}
	if stats.Accuracy != 0 || stats.BestRace != nil {
		t.Errorf("Accuracy = %d, BestRace = %v, want zeroed", stats.Accuracy, stats.BestRace)
	}
}

func TestAggregateSeason_SkipsUnscoreableRaces(t *testing.T) {
	open := ClosedRace{Race: Race{ID: "r1", Status: StatusVoting, ResultsOrder: []string{"A"}}}
	noResults := ClosedRace{Race: Race{ID: "r2", Status: StatusClosed, ResultsOrder: nil}}

	stats := AggregateSeason(20, []ClosedRace{open, noResults})

	if stats.Points != 20 {
		t.Errorf("Points = %d, want 20 (nothing scoreable)", stats.Points)
	}
	if len(stats.RaceScores) != 0 {
		t.Errorf("RaceScores len = %d, want 0", len(stats.RaceScores))
	}
}

func TestAggregateSeason_UntippedRaceScoresZero(t *testing.T) {
	official := drivers("A", "B", "C")
	closed := []ClosedRace{
		closedRace("r1", "2026-03-01", official, official), // perfect short tip
		closedRace("r2", "2026-03-15", official, nil),      // never tipped
	}

	stats := AggregateSeason(0, closed)

	perfect := ScoreTip(official, official).Score
	if stats.Points != perfect {
		t.Errorf("Points = %d, want %d (untipped race adds 0, not a penalty)", stats.Points, perfect)
	}
	// Accuracy averages only tipped races: r1 alone at 100.
	if stats.Accuracy != 100 {
		t.Errorf("Accuracy = %d, want 100", stats.Accuracy)
	}
	// r2 is more recent, so it is the "last race" with 0 points.
	if stats.LastRacePoints != 0 {
		t.Errorf("LastRacePoints = %d, want 0", stats.LastRacePoints)
	}
}

func TestAggregateSeason_FormOverRecentThree(t *testing.T) {
	official := drivers("A", "B", "C", "D", "E")
	perOld := ScoreTip(official, official).Score // identical tips every race

	closed := []ClosedRace{
		closedRace("r1", "2026-03-01", official, official),
		closedRace("r2", "2026-04-01", official, official),
		closedRace("r3", "2026-05-01", official, nil),
		closedRace("r4", "2026-06-01", official, official),
	}

	stats := AggregateSeason(10, closed)

	if stats.Points != 10+3*perOld {
		t.Errorf("Points = %d, want %d", stats.Points, 10+3*perOld)
	}
	// Most recent three are r4, r3, r2 with scores per, 0, per.
	wantForm := int(float64(2*perOld)/3 + 0.5)
	if stats.Form != wantForm {
		t.Errorf("Form = %d, want %d", stats.Form, wantForm)
	}
	if stats.LastRacePoints != perOld {
		t.Errorf("LastRacePoints = %d, want %d (r4)", stats.LastRacePoints, perOld)
	}
	if stats.BestRace == nil || stats.BestRace.Score != perOld {
		t.Errorf("BestRace = %+v, want score %d", stats.BestRace, perOld)
	}
}

func TestAggregateSeason_UndatedRacesSortLast(t *testing.T) {
	official := drivers("A", "B")
	closed := []ClosedRace{
		closedRace("undated", "", official, official),
		closedRace("garbled", "next tuesday", official, nil),
		closedRace("dated", "2026-05-10", official, nil),
	}

	stats := AggregateSeason(0, closed)

	if got := stats.RaceScores[0].Race.ID; got != "dated" {
		t.Errorf("most recent race = %q, want dated", got)
	}
	// Undated races keep their input order after all dated ones.
	if stats.RaceScores[1].Race.ID != "undated" || stats.RaceScores[2].Race.ID != "garbled" {
		t.Errorf("undated order = %q, %q, want undated, garbled",
			stats.RaceScores[1].Race.ID, stats.RaceScores[2].Race.ID)
	}
	// "dated" is untipped, so the last race scored zero.
	if stats.LastRacePoints != 0 {
		t.Errorf("LastRacePoints = %d, want 0", stats.LastRacePoints)
	}
}
