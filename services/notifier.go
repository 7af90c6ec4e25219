package services

import "strconv"

// Event names pushed to subscribers.
const (
	EventOrderNew       = "order:new"
	EventOrderUpdate    = "order:update"
	EventOrderCompleted = "order:completed"
	EventOrderCancelled = "order:cancelled"
)

// AdminChannel is the broadcast channel every admin session listens on.
const AdminChannel = "admin"

func VendorChannel(vendorID uint) string {
	return "vendor:" + strconv.FormatUint(uint64(vendorID), 10)
}

func UserChannel(userID uint) string {
	return "user:" + strconv.FormatUint(uint64(userID), 10)
}

// Notifier delivers best-effort events; it never reports failures to the caller.
type Notifier interface {
	Publish(key, event string, payload any)
	PublishToMany(keys []string, event string, payload any)
}

type NopNotifier struct{}

func (NopNotifier) Publish(string, string, any)          {}
func (NopNotifier) PublishToMany([]string, string, any) {}
