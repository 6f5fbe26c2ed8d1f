package repository

import (
	"testing"
)

func TestBuildSearchConditionByDialect(t *testing.T) {
	cases := []struct {
		dialect   string
		columns   []string
		want      string
		wantCount int
	}{
		{dialect: "sqlite", columns: []string{"title", "slug"}, want: `(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(slug) LIKE ? ESCAPE '\')`, wantCount: 2},
		{dialect: "postgres", columns: []string{"code"}, want: "(code ILIKE ?)", wantCount: 1},
		{dialect: "sqlite", columns: []string{" ", ""}, want: "", wantCount: 0},
	}
	for _, tc := range cases {
		got, count := buildSearchConditionByDialect(tc.dialect, tc.columns...)
		if got != tc.want || count != tc.wantCount {
			t.Fatalf("%s %v: want %q/%d got %q/%d", tc.dialect, tc.columns, tc.want, tc.wantCount, got, count)
		}
	}
}

func TestDBDialectNameDefaultsToSQLite(t *testing.T) {
	if got := dbDialectName(nil); got != "sqlite" {
		t.Fatalf("nil db dialect want sqlite got %s", got)
	}
}

func TestEscapeLike(t *testing.T) {
	if got := escapeLike(`50%_off\`); got != `50\%\_off\\` {
		t.Fatalf("unexpected escape result %q", got)
	}
}

func TestRepeatLikeArgs(t *testing.T) {
	args := repeatLikeArgs("%test%", 3)
	if len(args) != 3 {
		t.Fatalf("args len want 3 got %d", len(args))
	}
	for idx, arg := range args {
		if arg != "%test%" {
			t.Fatalf("args[%d] want %%test%% got %v", idx, arg)
		}
	}
}
