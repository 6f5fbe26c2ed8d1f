package rules

import (
	"testing"
	"time"

	"github.com/bidmart-admin/internal/constants"
	"github.com/bidmart-admin/internal/models"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 1, 10, hour, minute, 0, 0, time.UTC)
}

func TestResolveStatusScenario(t *testing.T) {
	start, end := at(10, 0), at(12, 0)
	cases := []struct {
		now  time.Time
		want string
	}{
		{at(9, 59), constants.AuctionStatusUpcoming},
		{at(10, 0), constants.AuctionStatusLive},
		{at(11, 0), constants.AuctionStatusLive},
		{at(12, 0), constants.AuctionStatusLive},
		{at(12, 1), constants.AuctionStatusEnded},
	}
	for _, tc := range cases {
		if got := ResolveStatus(tc.now, start, end); got != tc.want {
			t.Fatalf("ResolveStatus(%s)=%s want %s", tc.now.Format("15:04"), got, tc.want)
		}
	}
}

func TestResolveStatusTotal(t *testing.T) {
	start, end := at(10, 0), at(12, 0)
	valid := map[string]bool{
		constants.AuctionStatusUpcoming: true,
		constants.AuctionStatusLive:     true,
		constants.AuctionStatusEnded:    true,
	}
	for offset := -180; offset <= 300; offset += 7 {
		now := start.Add(time.Duration(offset) * time.Minute)
		got := ResolveStatus(now, start, end)
		if !valid[got] {
			t.Fatalf("unexpected status %q at %v", got, now)
		}
		if again := ResolveStatus(now, start, end); again != got {
			t.Fatalf("non-deterministic result at %v: %s vs %s", now, got, again)
		}
	}
}

func TestResolveStatusInvertedWindowNeverLive(t *testing.T) {
	start, end := at(12, 0), at(10, 0)
	for offset := -120; offset <= 240; offset++ {
		now := at(9, 0).Add(time.Duration(offset) * time.Minute)
		if ResolveStatus(now, start, end) == constants.AuctionStatusLive {
			t.Fatalf("inverted window should not resolve live at %v", now)
		}
	}
}

func TestAuctionStatusIgnoresStoredCache(t *testing.T) {
	auction := &models.Auction{StartTime: at(10, 0), EndTime: at(12, 0), Status: constants.AuctionStatusUpcoming}
	if got := AuctionStatus(at(13, 0), auction); got != constants.AuctionStatusEnded {
		t.Fatalf("expected ended, got %s", got)
	}
	if got := AuctionStatus(at(13, 0), nil); got != "" {
		t.Fatalf("expected empty status for nil auction, got %s", got)
	}
}
