package models

type Request struct {
	ID          int64     `json:"id"`
	RequestorID int64     `json:"requestor_id"`
	Description string    `json:"description"`
	Created     LocalTime `json:"created"`
}

// RequestDetails augments a request with the items listed against it.
type RequestDetails struct {
	Request
	Items []Item `json:"items"`
}
