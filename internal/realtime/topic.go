// Package realtime pushes order snapshots to websocket subscribers.
//
// A single Hub owns every subscription. Subscribers are grouped by topic: the
// admin view of all orders, or one shop's view. The hub runs one query per active
// topic, whatever the number of subscribers, and only sends a payload when it
// differs from the previous one sent to that topic. Refreshes happen on a fixed
// cadence (see jobs.OrderTrackingJob) and right after a committed write
// announced on the change feed.
package realtime

import (
	"strings"

	"marketplace/internal/core/ports"
)

// Topic names a realtime stream.
type Topic string

// OrdersTopic streams every order; admin only.
const OrdersTopic Topic = "orders"

const shopTopicPrefix = "shop:"

// ShopTopic streams the compact views of one shop.
func ShopTopic(shopID string) Topic {
	return Topic(shopTopicPrefix + shopID)
}

// ShopID returns the shop of a shop topic.
func (t Topic) ShopID() (string, bool) {
	if !strings.HasPrefix(string(t), shopTopicPrefix) {
		return "", false
	}
	return strings.TrimPrefix(string(t), shopTopicPrefix), true
}

// Kind is the metrics label of the topic: "orders" or "shop".
func (t Topic) Kind() string {
	if _, ok := t.ShopID(); ok {
		return "shop"
	}
	return string(OrdersTopic)
}

// topicsFor lists the topics whose payload change may affect.
func topicsFor(change ports.OrderChange) []Topic {
	topics := make([]Topic, 0, len(change.ShopIDs)+1)
	topics = append(topics, OrdersTopic)
	for _, id := range change.ShopIDs {
		topics = append(topics, ShopTopic(id))
	}
	return topics
}
