package usecase_test

import (
	. "github.com/sunitsen/flame/internal/usecase"

	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/sunitsen/flame/internal/domain/model"
	testhelpers "github.com/sunitsen/flame/internal/test"
)

func TestSalesSummary(t *testing.T) {
	repo := testhelpers.NewOrderRepositoryStub()
	day1 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	orders := []model.Order{
		{
			ID: "o1", Status: model.OrderStatusCompleted, Total: 30, CreatedAt: day1,
			Items: []model.OrderItem{
				{MenuItemID: "m1", MenuItemName: "Pad Thai", Quantity: 2, TotalPrice: 24},
				{MenuItemID: "m2", MenuItemName: "Spring Rolls", Quantity: 1, TotalPrice: 6},
			},
		},
		{
			ID: "o2", Status: model.OrderStatusConfirmed, Total: 10, CreatedAt: day2,
			Items: []model.OrderItem{
				{MenuItemID: "m2", MenuItemName: "Spring Rolls", Quantity: 2, TotalPrice: 10},
			},
		},
		{
			ID: "o3", Status: model.OrderStatusCanceled, Total: 100, CreatedAt: day2,
			Items: []model.OrderItem{
				{MenuItemID: "m3", MenuItemName: "Lobster", Quantity: 1, TotalPrice: 100},
			},
		},
	}
	for i := range orders {
		if err := repo.Put(context.Background(), &orders[i]); err != nil {
			t.Fatalf("seed order: %v", err)
		}
	}

	summary, err := NewAnalyticsUseCase(repo).SalesSummary(context.Background())
	if err != nil {
		t.Fatalf("sales summary: %v", err)
	}

	if summary.TotalOrders != 2 {
		t.Errorf("expected 2 orders counted, got %d", summary.TotalOrders)
	}
	if summary.TotalRevenue != 40 {
		t.Errorf("expected revenue 40, got %v", summary.TotalRevenue)
	}
	if math.Abs(summary.AverageOrderValue-20) > 1e-9 {
		t.Errorf("expected average 20, got %v", summary.AverageOrderValue)
	}

	if len(summary.TopItems) != 2 {
		t.Fatalf("expected 2 top items, got %d", len(summary.TopItems))
	}
	if summary.TopItems[0].MenuItemID != "m1" || summary.TopItems[0].Revenue != 24 {
		t.Errorf("expected Pad Thai on top, got %+v", summary.TopItems[0])
	}
	if summary.TopItems[1].MenuItemID != "m2" || summary.TopItems[1].QuantitySold != 3 {
		t.Errorf("expected Spring Rolls aggregated across orders, got %+v", summary.TopItems[1])
	}

	if len(summary.OrderVolumeByDay) != 2 {
		t.Fatalf("expected 2 volume buckets, got %d", len(summary.OrderVolumeByDay))
	}
	if summary.OrderVolumeByDay[0].Date != "2025-06-01" || summary.OrderVolumeByDay[0].Count != 1 {
		t.Errorf("unexpected first bucket: %+v", summary.OrderVolumeByDay[0])
	}
	if summary.OrderVolumeByDay[1].Date != "2025-06-02" || summary.OrderVolumeByDay[1].Revenue != 10 {
		t.Errorf("unexpected second bucket: %+v", summary.OrderVolumeByDay[1])
	}
}

func TestSalesSummaryCapsTopItems(t *testing.T) {
	repo := testhelpers.NewOrderRepositoryStub()
	order := model.Order{ID: "o1", Status: model.OrderStatusCompleted, CreatedAt: time.Unix(0, 0)}
	for i := 0; i < 8; i++ {
		order.Items = append(order.Items, model.OrderItem{
			MenuItemID:   fmt.Sprintf("m%d", i),
			MenuItemName: fmt.Sprintf("Item %d", i),
			Quantity:     1,
			TotalPrice:   float64(i + 1),
		})
	}
	if err := repo.Put(context.Background(), &order); err != nil {
		t.Fatalf("seed order: %v", err)
	}

	summary, err := NewAnalyticsUseCase(repo).SalesSummary(context.Background())
	if err != nil {
		t.Fatalf("sales summary: %v", err)
	}
	if len(summary.TopItems) != 5 {
		t.Fatalf("expected top items capped at 5, got %d", len(summary.TopItems))
	}
	if summary.TopItems[0].MenuItemID != "m7" {
		t.Errorf("expected highest revenue item first, got %+v", summary.TopItems[0])
	}
}

func TestSalesSummaryEmpty(t *testing.T) {
	repo := testhelpers.NewOrderRepositoryStub()
	summary, err := NewAnalyticsUseCase(repo).SalesSummary(context.Background())
	if err != nil {
		t.Fatalf("sales summary: %v", err)
	}
	if summary.TotalOrders != 0 || summary.TotalRevenue != 0 || summary.AverageOrderValue != 0 {
		t.Errorf("expected zeroed summary, got %+v", summary)
	}
}
