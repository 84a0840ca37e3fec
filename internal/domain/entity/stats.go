package entity

// PlatformStats is the admin dashboard summary.
type PlatformStats struct {
	UsersByRole      map[Role]int64          `json:"usersByRole"`
	BookingsByStatus map[BookingStatus]int64 `json:"bookingsByStatus"`
	Services         int64                   `json:"services"`
	Reviews          int64                   `json:"reviews"`
	AverageRating    float64                 `json:"averageRating"`
}
