package usecase

import (
	"context"
	"sort"

	"github.com/sunitsen/flame/internal/domain/model"
	"github.com/sunitsen/flame/internal/domain/repository"
)

const topItemsLimit = 5

// AnalyticsUseCase computes the admin dashboard sales summary from the
// order log. Canceled orders are excluded from revenue.
type AnalyticsUseCase struct {
	orders repository.OrderRepository
}

// NewAnalyticsUseCase constructs AnalyticsUseCase.
func NewAnalyticsUseCase(orders repository.OrderRepository) *AnalyticsUseCase {
	return &AnalyticsUseCase{orders: orders}
}

// SalesSummary aggregates revenue, order counts, top items, and daily
// volume across all orders.
func (u *AnalyticsUseCase) SalesSummary(ctx context.Context) (*model.SalesAnalytics, error) {
	orders, err := u.orders.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	summary := &model.SalesAnalytics{}
	items := make(map[string]*model.TopItem)
	volume := make(map[string]*model.OrderVolume)

	for i := range orders {
		order := &orders[i]
		if order.Status == model.OrderStatusCanceled {
			continue
		}
		summary.TotalOrders++
		summary.TotalRevenue += order.Total

		day := order.CreatedAt.Format("2006-01-02")
		if volume[day] == nil {
			volume[day] = &model.OrderVolume{Date: day}
		}
		volume[day].Count++
		volume[day].Revenue += order.Total

		for _, item := range order.Items {
			if items[item.MenuItemID] == nil {
				items[item.MenuItemID] = &model.TopItem{
					MenuItemID:   item.MenuItemID,
					MenuItemName: item.MenuItemName,
				}
			}
			items[item.MenuItemID].QuantitySold += item.Quantity
			items[item.MenuItemID].Revenue += item.TotalPrice
		}
	}

	if summary.TotalOrders > 0 {
		summary.AverageOrderValue = summary.TotalRevenue / float64(summary.TotalOrders)
	}

	for _, item := range items {
		summary.TopItems = append(summary.TopItems, *item)
	}
	sort.Slice(summary.TopItems, func(i, j int) bool {
		return summary.TopItems[i].Revenue > summary.TopItems[j].Revenue
	})
	if len(summary.TopItems) > topItemsLimit {
		summary.TopItems = summary.TopItems[:topItemsLimit]
	}

	for _, day := range volume {
		summary.OrderVolumeByDay = append(summary.OrderVolumeByDay, *day)
	}
	sort.Slice(summary.OrderVolumeByDay, func(i, j int) bool {
		return summary.OrderVolumeByDay[i].Date < summary.OrderVolumeByDay[j].Date
	})

	return summary, nil
}
