package model

// TopItem aggregates sales of a single menu item.
type TopItem struct {
	MenuItemID   string  `json:"menu_item_id"`
	MenuItemName string  `json:"menu_item_name"`
	QuantitySold int     `json:"quantity_sold"`
	Revenue      float64 `json:"revenue"`
}

// OrderVolume is daily order count and revenue.
type OrderVolume struct {
	Date    string  `json:"date"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// SalesAnalytics backs the admin dashboard summary.
type SalesAnalytics struct {
	TotalRevenue      float64       `json:"total_revenue"`
	TotalOrders       int           `json:"total_orders"`
	AverageOrderValue float64       `json:"average_order_value"`
	TopItems          []TopItem     `json:"top_items"`
	OrderVolumeByDay  []OrderVolume `json:"order_volume_by_day"`
}
