package domain

import "time"

// Receipt records an applied purchase for the audit trail.
type Receipt struct {
	SessionID string     `json:"session_id" bson:"session_id"`
	IntentID  string     `json:"intent_id" bson:"intent_id"`
	Kind      IntentKind `json:"kind" bson:"kind"`
	Subject   string     `json:"subject" bson:"subject"`
	Cost      Money      `json:"cost" bson:"cost"`
	Effect    Effect     `json:"effect" bson:"effect"`
	Balances  Balances   `json:"balances" bson:"balances"`
	AppliedAt time.Time  `json:"applied_at" bson:"applied_at"`
}
