package query

import (
	"slices"
	"testing"
)

func values(rows []Row, f Field) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i], _ = r[f].(string)
	}
	return out
}

func rowsOf(f Field, vals ...string) []Row {
	rows := make([]Row, len(vals))
	for i, v := range vals {
		rows[i] = Row{f: v}
	}
	return rows
}

func TestRankByPosition_EarlierPositionThenShorter(t *testing.T) {
	q := RankByPosition(All(), "T", FieldMake)

	rows := rowsOf(FieldMake, "XTX", "XT", "TX")
	q.Sort(rows)

	// TX: position 1. XT and XTX share position 2; XT is shorter.
	want := []string{"TX", "XT", "XTX"}
	if got := values(rows, FieldMake); !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRankByPosition_NoMatchRanksLast(t *testing.T) {
	q := RankByPosition(All(), "for", FieldMake)

	rows := rowsOf(FieldMake, "GMC", "Ford", "Alfa Romeo", "Ai")
	q.Sort(rows)

	got := values(rows, FieldMake)
	if got[0] != "Ford" {
		t.Errorf("expected Ford first, got %v", got)
	}
	// Non-matching values order by length only.
	if !slices.Equal(got[1:], []string{"Ai", "GMC", "Alfa Romeo"}) {
		t.Errorf("unexpected tail order %v", got[1:])
	}
}

func TestRankByTier(t *testing.T) {
	q := RankByTier(All(), "ABC", FieldSKU)

	rows := rowsOf(FieldSKU, "XABCX", "ABC123", "ABC")
	q.Sort(rows)

	want := []string{"ABC", "ABC123", "XABCX"}
	if got := values(rows, FieldSKU); !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	exact, prefix, sub := Row{FieldSKU: "ABC"}, Row{FieldSKU: "ABC123"}, Row{FieldSKU: "XABCX"}
	if q.Compare(exact, prefix) >= 0 {
		t.Error("exact must rank strictly before prefix")
	}
	if q.Compare(prefix, sub) >= 0 {
		t.Error("prefix must rank strictly before substring")
	}
}

func TestRankByTier_LengthBreaksTies(t *testing.T) {
	q := RankByTier(All(), "12", FieldSKU)

	rows := rowsOf(FieldSKU, "12-000", "12A", "9912", "812")
	q.Sort(rows)

	want := []string{"12A", "12-000", "812", "9912"}
	if got := values(rows, FieldSKU); !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRank_ReturnsCopy(t *testing.T) {
	base := All().Where(Eq(FieldMake, "Ford"))
	ranked := RankByTier(base, "x", FieldSKU)

	if len(base.Order()) != 0 {
		t.Error("ranking mutated the input query")
	}
	if len(ranked.Order()) != 2 {
		t.Errorf("expected 2 sort keys, got %d", len(ranked.Order()))
	}
	if len(ranked.Clauses()) != 1 {
		t.Error("ranking must keep clauses")
	}
}

func TestAlphabetical(t *testing.T) {
	q := Alphabetical(All(), FieldCategory)
	rows := rowsOf(FieldCategory, "Lighting", "Brakes", "Engine")
	q.Sort(rows)

	want := []string{"Brakes", "Engine", "Lighting"}
	if got := values(rows, FieldCategory); !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestPosition(t *testing.T) {
	tests := []struct {
		v, term string
		want    int
	}{
		{"Toyota", "yo", 3},
		{"toyota", "TOY", 1},
		{"Mazda", "x", 0},
		{"Škoda", "oda", 3},
	}
	for _, tc := range tests {
		if got := Position(tc.v, tc.term); got != tc.want {
			t.Errorf("Position(%q, %q) = %d, want %d", tc.v, tc.term, got, tc.want)
		}
	}
}
