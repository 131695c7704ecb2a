package seed

import (
	"encoding/json"
	"time"
)

// snapshotJSON формат файла с начальными данными
type snapshotJSON struct {
	Businesses   []businessJSON    `json:"businesses"`
	Appointments []appointmentJSON `json:"appointments"`
}

type locationJSON struct {
	Address string `json:"address"`
	Area    string `json:"area"`
	City    string `json:"city"`
	ZipCode string `json:"zipCode"`
}

type serviceJSON struct {
	ID          int64   `json:"Id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Duration    int     `json:"duration"`
	Price       float64 `json:"price"`
}

// dayJSON принимает обе формы расписания: {open, close} и {start, end}
type dayJSON struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Closed bool   `json:"closed"`
}

type businessJSON struct {
	ID          int64              `json:"Id"`
	Name        string             `json:"name"`
	Type        string             `json:"type"`
	Location    locationJSON       `json:"location"`
	Description string             `json:"description"`
	Services    []serviceJSON      `json:"services"`
	Hours       map[string]dayJSON `json:"hours"`
	Rating      float64            `json:"rating"`
	ReviewCount int                `json:"reviewCount"`
	Featured    bool               `json:"featured"`
	Images      []string           `json:"images"`
	Phone       string             `json:"phone"`
	Email       string             `json:"email"`
	OwnerName   string             `json:"ownerName"`
	CreatedAt   *time.Time         `json:"createdAt"`
}

type appointmentJSON struct {
	ID            int64       `json:"Id"`
	BusinessID    json.Number `json:"businessId"`
	CustomerID    string      `json:"customerId"`
	CustomerName  string      `json:"customerName"`
	CustomerEmail string      `json:"customerEmail"`
	CustomerPhone string      `json:"customerPhone"`
	ServiceID     json.Number `json:"serviceId"`
	ServiceName   string      `json:"serviceName"`
	Date          string      `json:"date"`
	Time          string      `json:"time"`
	Duration      int         `json:"duration"`
	Price         float64     `json:"price"`
	Notes         *string     `json:"notes"`
	Status        string      `json:"status"`
	CreatedAt     *time.Time  `json:"createdAt"`
	CancelledAt   *time.Time  `json:"cancelledAt"`
}
