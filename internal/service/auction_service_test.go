package service

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/bidmart-admin/internal/constants"
	"github.com/bidmart-admin/internal/repository"
	"github.com/bidmart-admin/internal/rules"
)

func newAuctionServiceForTest(t *testing.T) (*AuctionService, *movableClock, uint) {
	t.Helper()
	db := setupServiceTestDB(t)
	product := seedProduct(t, db, "watch")
	clk := &movableClock{now: serviceTestNow}
	svc := NewAuctionService(repository.NewAuctionRepository(db), repository.NewProductRepository(db), nil, clk, false)
	return svc, clk, product.ID
}

func auctionInput(productID uint, number string, start, end time.Time) AuctionInput {
	return AuctionInput{Candidate: rules.AuctionCandidate{
		ProductID:        strconv.FormatUint(uint64(productID), 10),
		AuctionNumber:    number,
		StartingPrice:    "100",
		MinimumIncrement: "5",
		BidType:          constants.BidTypeFree,
		StartTime:        start.Format(time.RFC3339),
		EndTime:          end.Format(time.RFC3339),
		EntryType:        constants.EntryTypeFree,
	}}
}

func fieldErrorsOf(t *testing.T, err error) rules.FieldErrors {
	t.Helper()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	return verr.Fields
}

func TestAuctionServiceCreateAndRecomputeStatus(t *testing.T) {
	svc, clk, productID := newAuctionServiceForTest(t)
	start := serviceTestNow.Add(time.Hour)
	end := serviceTestNow.Add(3 * time.Hour)

	created, err := svc.Create(auctionInput(productID, "1", start, end))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Status != constants.AuctionStatusUpcoming {
		t.Fatalf("expected upcoming, got %s", created.Status)
	}

	clk.Set(start)
	got, err := svc.Get(created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Status != constants.AuctionStatusLive {
		t.Fatalf("expected live at start instant, got %s", got.Status)
	}

	clk.Set(end.Add(time.Second))
	got, err = svc.Get(created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Status != constants.AuctionStatusEnded {
		t.Fatalf("expected ended, got %s", got.Status)
	}
}

func TestAuctionServiceRejectsDuplicateNumber(t *testing.T) {
	svc, _, productID := newAuctionServiceForTest(t)
	start := serviceTestNow.Add(time.Hour)
	end := serviceTestNow.Add(2 * time.Hour)

	first, err := svc.Create(auctionInput(productID, "1", start, end))
	if err != nil {
		t.Fatalf("create first failed: %v", err)
	}
	second, err := svc.Create(auctionInput(productID, "2", start, end))
	if err != nil {
		t.Fatalf("create second failed: %v", err)
	}

	_, err = svc.Create(auctionInput(productID, "1.0", start, end))
	if !errors.Is(err, ErrAuctionInvalid) {
		t.Fatalf("expected ErrAuctionInvalid, got %v", err)
	}
	if !fieldErrorsOf(t, err).Has(rules.FieldAuctionNumber) {
		t.Fatalf("expected auction_number error")
	}

	_, err = svc.Update(second.ID, auctionInput(productID, "1", start, end))
	if !fieldErrorsOf(t, err).Has(rules.FieldAuctionNumber) {
		t.Fatalf("expected auction_number error on edit, got %v", err)
	}

	if _, err := svc.Update(first.ID, auctionInput(productID, "1", start, end.Add(time.Hour))); err != nil {
		t.Fatalf("editing own number should pass: %v", err)
	}
}

func TestAuctionServiceUpdateKeepsPastStartWhenUnchanged(t *testing.T) {
	svc, clk, productID := newAuctionServiceForTest(t)
	start := serviceTestNow.Add(time.Hour)
	end := serviceTestNow.Add(5 * time.Hour)

	created, err := svc.Create(auctionInput(productID, "1", start, end))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	clk.Set(start.Add(30 * time.Minute))
	input := auctionInput(productID, "1", start, end)
	input.Candidate.MinimumIncrement = "10"
	updated, err := svc.Update(created.ID, input)
	if err != nil {
		t.Fatalf("update with unchanged start failed: %v", err)
	}
	if updated.Status != constants.AuctionStatusLive {
		t.Fatalf("expected live, got %s", updated.Status)
	}

	moved := auctionInput(productID, "1", start.Add(-time.Minute), end)
	_, err = svc.Update(created.ID, moved)
	if !fieldErrorsOf(t, err).Has(rules.FieldStartTime) {
		t.Fatalf("expected start_time error when moving start into the past")
	}
}

func TestAuctionServiceRejectsUnknownProduct(t *testing.T) {
	svc, _, _ := newAuctionServiceForTest(t)
	_, err := svc.Create(auctionInput(9999, "1", serviceTestNow.Add(time.Hour), serviceTestNow.Add(2*time.Hour)))
	if !fieldErrorsOf(t, err).Has(rules.FieldProductID) {
		t.Fatalf("expected product_id error, got %v", err)
	}
}

func TestAuctionServiceListByDerivedStatus(t *testing.T) {
	svc, clk, productID := newAuctionServiceForTest(t)
	if _, err := svc.Create(auctionInput(productID, "1", serviceTestNow.Add(time.Hour), serviceTestNow.Add(2*time.Hour))); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(auctionInput(productID, "2", serviceTestNow.Add(3*time.Hour), serviceTestNow.Add(4*time.Hour))); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	clk.Set(serviceTestNow.Add(90 * time.Minute))
	tests := []struct {
		status string
		want   int64
	}{
		{constants.AuctionStatusLive, 1},
		{constants.AuctionStatusUpcoming, 1},
		{constants.AuctionStatusEnded, 0},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			rows, total, err := svc.List(AuctionListQuery{Status: tt.status})
			if err != nil {
				t.Fatalf("list failed: %v", err)
			}
			if total != tt.want || int64(len(rows)) != tt.want {
				t.Fatalf("expected %d rows, got total=%d len=%d", tt.want, total, len(rows))
			}
			for _, row := range rows {
				if row.Status != tt.status {
					t.Fatalf("row status %s does not match filter %s", row.Status, tt.status)
				}
			}
		})
	}

	affected, err := svc.RefreshStatuses()
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected one cached status rewritten, got %d", affected)
	}
}

func TestAuctionServiceDeleteNotFound(t *testing.T) {
	svc, _, _ := newAuctionServiceForTest(t)
	if err := svc.Delete(42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
