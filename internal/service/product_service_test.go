package service

import (
	"errors"
	"testing"
	"time"

	"github.com/bidmart-admin/internal/models"
	"github.com/bidmart-admin/internal/repository"
)

func TestProductDeleteRefusedWhileAuctionsExist(t *testing.T) {
	db := setupServiceTestDB(t)
	product := seedProduct(t, db, "lamp")
	auctionRepo := repository.NewAuctionRepository(db)
	productSvc := NewProductService(repository.NewProductRepository(db), repository.NewCategoryRepository(db))
	auctionSvc := NewAuctionService(auctionRepo, repository.NewProductRepository(db), nil, &movableClock{now: serviceTestNow}, false)

	created, err := auctionSvc.Create(auctionInput(product.ID, "1", serviceTestNow.Add(time.Hour), serviceTestNow.Add(2*time.Hour)))
	if err != nil {
		t.Fatalf("create auction failed: %v", err)
	}
	if err := productSvc.Delete(product.ID); !errors.Is(err, ErrProductInUse) {
		t.Fatalf("expected ErrProductInUse, got %v", err)
	}

	if err := auctionSvc.Delete(created.ID); err != nil {
		t.Fatalf("delete auction failed: %v", err)
	}
	if _, err := productSvc.Get(product.ID); err != nil {
		t.Fatalf("product must survive auction deletion: %v", err)
	}
	if err := productSvc.Delete(product.ID); err != nil {
		t.Fatalf("delete product failed: %v", err)
	}
}

func TestProductCreateValidation(t *testing.T) {
	db := setupServiceTestDB(t)
	existing := seedProduct(t, db, "taken")
	svc := NewProductService(repository.NewProductRepository(db), repository.NewCategoryRepository(db))

	tests := []struct {
		name  string
		input ProductInput
		want  error
	}{
		{"missing title", ProductInput{CategoryID: existing.CategoryID, Slug: "x"}, ErrProductInvalid},
		{"negative price", ProductInput{CategoryID: existing.CategoryID, Slug: "x", Title: "X", BasePrice: models.NewMoneyFromInt(-1)}, ErrProductInvalid},
		{"unknown category", ProductInput{CategoryID: 999, Slug: "x", Title: "X"}, ErrCategoryNotFound},
		{"duplicate slug", ProductInput{CategoryID: existing.CategoryID, Slug: "taken", Title: "X"}, ErrSlugExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(tt.input); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestCategoryDeleteRefusedWhileInUse(t *testing.T) {
	db := setupServiceTestDB(t)
	product := seedProduct(t, db, "chair")
	svc := NewCategoryService(repository.NewCategoryRepository(db))
	if err := svc.Delete(product.CategoryID); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}
}
