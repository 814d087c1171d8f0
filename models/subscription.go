package models

import "time"

// SubscriptionStatus is the lifecycle state of a client's enrollment.
type SubscriptionStatus string

const (
	SubscriptionPendingSetup SubscriptionStatus = "pending_setup"
	SubscriptionActive       SubscriptionStatus = "active"
	SubscriptionPaused       SubscriptionStatus = "paused"
	SubscriptionCancelled    SubscriptionStatus = "cancelled"
	SubscriptionExpired      SubscriptionStatus = "expired"
)

// Subscription is a client's enrollment in a Program. Price, features and
// practitioner type are snapshots taken at purchase time so later catalog
// edits never change what the client bought. RoomID is set exactly once,
// when setup completes and the consultation room is provisioned.
type Subscription struct {
	ID                string             `bson:"id" json:"id"`
	UserID            string             `bson:"user_id" json:"userId"`
	PlanID            string             `bson:"plan_id" json:"planId"`
	PlanTitle         string             `bson:"plan_title" json:"planTitle"`
	PlanCategory      ProgramCategory    `bson:"plan_category" json:"planCategory"`
	Price             float64            `bson:"price" json:"price"`
	PractitionerType  string             `bson:"practitioner_type" json:"practitionerType"`
	Features          []string           `bson:"features" json:"features"`
	Status            SubscriptionStatus `bson:"status" json:"status"`
	RoomID            string             `bson:"room_id,omitempty" json:"roomId,omitempty"`
	PractitionerID    string             `bson:"practitioner_id,omitempty" json:"practitionerId,omitempty"`
	SetupComplete     bool               `bson:"setup_complete" json:"setupComplete"`
	ClientPreferences map[string]string  `bson:"client_preferences,omitempty" json:"clientPreferences,omitempty"`
	CreatedAt         time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updated_at" json:"updatedAt"`
	NextBillingDate   time.Time          `bson:"next_billing_date" json:"nextBillingDate"`
}

// SubscriptionSummary is the compact entry appended to a user's profile
// when a subscription is created.
type SubscriptionSummary struct {
	SubscriptionID string             `bson:"subscription_id" json:"subscriptionId"`
	PlanID         string             `bson:"plan_id" json:"planId"`
	PlanTitle      string             `bson:"plan_title" json:"planTitle"`
	Status         SubscriptionStatus `bson:"status" json:"status"`
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
}
