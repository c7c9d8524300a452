package model

import "time"

type BapEvent struct {
	ID         string    `db:"id" json:"event_id"`
	BapID      string    `db:"bap_id" json:"bap_id"`
	MerchantID *string   `db:"merchant_id" json:"merchant_id"`
	Action     string    `db:"action" json:"action"`
	OccurredAt time.Time `db:"occurred_at" json:"timestamp"`
}

type DistinctBapCounts struct {
	LastMonth int `db:"last_month" json:"lastMonth"`
	LastWeek  int `db:"last_week" json:"lastWeek"`
	LastDay   int `db:"last_day" json:"lastDay"`
}
