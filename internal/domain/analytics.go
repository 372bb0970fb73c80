package domain

type DashboardMetrics struct {
	TotalOrders          int64            `json:"totalOrders"`
	DeliveredOrders      int64            `json:"deliveredOrders"`
	ConversionRate       float64          `json:"conversionRate"`
	DeliveredRevenue     float64          `json:"deliveredRevenue"`
	AverageOrderValue    float64          `json:"averageOrderValue"`
	ReturnedProducts     int64            `json:"returnedProducts"`
	TotalOrderedProducts int64            `json:"totalOrderedProducts"`
	TotalInStock         int64            `json:"totalInStock"`
	PendingCashToAdmin   float64          `json:"pendingCashToAdmin"`
	PendingAmountToAdmin float64          `json:"pendingAmountToAdmin"`
	PendingOrders        int64            `json:"pendingOrders"`
	TotalOutOfStock      int64            `json:"totalOutOfStock"`
	TotalLowStock        int64            `json:"totalLowStock"`
	CanceledOrders       int64            `json:"cancledOrders"`
	CategoryStatus       []CategoryStatus `json:"categoryStatus"`
}

type CategoryStatus struct {
	Category             string  `json:"category"`
	DeliveredRevenue     float64 `json:"deliveredRevenue"`
	TotalOrderedProducts int64   `json:"totalOrderedProducts"`
}

type TrendPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type ShippingStatusPoint struct {
	Date      string `json:"date"`
	Pending   int64  `json:"pending"`
	Shipped   int64  `json:"shipped"`
	Delivered int64  `json:"delivered"`
}

type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
