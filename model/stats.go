package model

// RoleCount and CategoryCount keep the aggregation grouping key in the _id
// field, matching the shape the admin dashboard consumes.
type RoleCount struct {
	Role  string `json:"_id" bson:"_id"`
	Count int64  `json:"count" bson:"count"`
}

type CategoryCount struct {
	Category string `json:"_id" bson:"_id"`
	Count    int64  `json:"count" bson:"count"`
}

type PlatformStats struct {
	TotalUsers       int64           `json:"totalUsers"`
	TotalEvents      int64           `json:"totalEvents"`
	TotalBookings    int64           `json:"totalBookings"`
	TotalRevenue     float64         `json:"totalRevenue"`
	UsersByRole      []RoleCount     `json:"usersByRole"`
	EventsByCategory []CategoryCount `json:"eventsByCategory"`
}

// EventRollup is an event joined with its confirmed-booking totals.
type EventRollup struct {
	Event            `bson:",inline"`
	TotalBookings    int64   `json:"totalBookings" bson:"totalBookings"`
	TotalSeatsBooked int64   `json:"totalSeatsBooked" bson:"totalSeatsBooked"`
	Revenue          float64 `json:"revenue" bson:"revenue"`
}
