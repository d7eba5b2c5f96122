package models

import "time"

type Booking struct {
	ID         int64     `json:"id"`
	ItemID     int64     `json:"item_id"`
	ItemName   string    `json:"item_name"`
	BookerID   int64     `json:"booker_id"`
	BookerName string    `json:"booker_name"`
	Start      LocalTime `json:"start"`
	End        LocalTime `json:"end"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}

type NewBooking struct {
	ItemID int64     `json:"itemId"`
	Start  LocalTime `json:"start"`
	End    LocalTime `json:"end"`
}
