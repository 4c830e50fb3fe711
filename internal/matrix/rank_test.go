package matrix

import (
	"reflect"
	"testing"
)

func TestRankRow_NoTies(t *testing.T) {
	got := rankRow([]float64{3, 1, 2}, RankMax)
	want := []float64{3, 1, 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("rankRow = %v, want %v", got, want)
	}
}

func TestRankRow_Ties(t *testing.T) {
	row := []float64{5, 5, 2}

	cases := []struct {
		method RankMethod
		want   []float64
	}{
		{RankAverage, []float64{2.5, 2.5, 1}},
		{RankMin, []float64{2, 2, 1}},
		{RankMax, []float64{3, 3, 1}},
		{RankDense, []float64{2, 2, 1}},
		{RankFirst, []float64{2, 3, 1}},
	}
	for _, c := range cases {
		if got := rankRow(row, c.method); !reflect.DeepEqual(got, c.want) {
			t.Errorf("rankRow(%s) = %v, want %v", c.method, got, c.want)
		}
	}
}

func TestRanks_PerSample(t *testing.T) {
	m := testMatrix(t)

	ranks := m.Ranks(RankMax)
	if !reflect.DeepEqual(ranks[0], []float64{1, 2, 3}) {
		t.Errorf("ranks[s1] = %v, want [1 2 3]", ranks[0])
	}
	if !reflect.DeepEqual(ranks[1], []float64{1, 2, 3}) {
		t.Errorf("ranks[s2] = %v, want [1 2 3]", ranks[1])
	}
}

func TestParseRankMethod(t *testing.T) {
	if m, err := ParseRankMethod(""); err != nil || m != RankMax {
		t.Errorf("ParseRankMethod(\"\") = %v, %v; want max default", m, err)
	}
	if _, err := ParseRankMethod("median"); err == nil {
		t.Error("expected error for unknown method")
	}
	for _, name := range []string{"average", "min", "max", "dense", "first"} {
		if _, err := ParseRankMethod(name); err != nil {
			t.Errorf("ParseRankMethod(%q): %v", name, err)
		}
	}
}
