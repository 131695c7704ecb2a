package get_owner_business

import (
	"github.com/m04kA/BookEasy/internal/api/handlers"
	"github.com/m04kA/BookEasy/internal/service/businesses"
)

// DashboardResponse сводка кабинета владельца
type DashboardResponse struct {
	BusinessID        int64                          `json:"businessId"`
	TotalBookings     int                            `json:"totalBookings"`
	UpcomingBookings  int                            `json:"upcomingBookings"`
	PastBookings      int                            `json:"pastBookings"`
	CancelledBookings int                            `json:"cancelledBookings"`
	Revenue           float64                        `json:"revenue"`
	Rating            float64                        `json:"rating"`
	ReviewCount       int                            `json:"reviewCount"`
	ServiceCount      int                            `json:"serviceCount"`
	Recent            []handlers.AppointmentResponse `json:"recentAppointments"`
}

func FromDashboard(d *businesses.Dashboard) DashboardResponse {
	return DashboardResponse{
		BusinessID:        d.BusinessID,
		TotalBookings:     d.TotalBookings,
		UpcomingBookings:  d.UpcomingBookings,
		PastBookings:      d.PastBookings,
		CancelledBookings: d.CancelledBookings,
		Revenue:           d.Revenue,
		Rating:            d.Rating,
		ReviewCount:       d.ReviewCount,
		ServiceCount:      d.ServiceCount,
		Recent:            handlers.NewAppointmentListResponse(d.Recent),
	}
}
