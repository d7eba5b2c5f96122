package models

// Booking lifecycle: WAITING is assigned on creation, the item's owner
// moves it to APPROVED or REJECTED.
const (
	StatusWaiting  = "WAITING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// State filters for booking listings.
const (
	StateAll      = "ALL"
	StateCurrent  = "CURRENT"
	StateFuture   = "FUTURE"
	StatePast     = "PAST"
	StateWaiting  = "WAITING"
	StateRejected = "REJECTED"
)

const (
	// DefaultRequestPageSize размер страницы списка запросов по умолчанию
	DefaultRequestPageSize = 50

	// OutboxQueueSize размер очереди воркера уведомлений
	OutboxQueueSize = 1000

	// RateLimitRequests количество запросов в окне на пользователя
	RateLimitRequests = 60

	// RateLimitWindow окно ограничения частоты запросов, секунды
	RateLimitWindow = 60
)

// KnownState reports whether s is a recognized booking state filter.
func KnownState(s string) bool {
	switch s {
	case StateAll, StateCurrent, StateFuture, StatePast, StateWaiting, StateRejected:
		return true
	}
	return false
}
