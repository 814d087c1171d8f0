package models

import "time"

// RoomSettings toggles per-room capabilities. All are enabled by default
// when the room is provisioned at subscription activation.
type RoomSettings struct {
	AllowVideo           bool `bson:"allow_video" json:"allowVideo"`
	AllowFileShare       bool `bson:"allow_file_share" json:"allowFileShare"`
	AllowBooking         bool `bson:"allow_booking" json:"allowBooking"`
	NotificationsEnabled bool `bson:"notifications_enabled" json:"notificationsEnabled"`
}

// DefaultRoomSettings returns the settings applied to freshly provisioned rooms.
func DefaultRoomSettings() RoomSettings {
	return RoomSettings{
		AllowVideo:           true,
		AllowFileShare:       true,
		AllowBooking:         true,
		NotificationsEnabled: true,
	}
}

// ConsultationRoom is the private messaging channel created exactly once
// when a Subscription activates (1:1 with the subscription).
type ConsultationRoom struct {
	ID               string          `bson:"id" json:"id"`
	SubscriptionID   string          `bson:"subscription_id" json:"subscriptionId"`
	ClientID         string          `bson:"client_id" json:"clientId"`
	PractitionerID   string          `bson:"practitioner_id,omitempty" json:"practitionerId,omitempty"`
	PlanTitle        string          `bson:"plan_title" json:"planTitle"`
	PlanCategory     ProgramCategory `bson:"plan_category" json:"planCategory"`
	PractitionerType string          `bson:"practitioner_type" json:"practitionerType"`
	Status           string          `bson:"status" json:"status"` // "open" for the life of the subscription
	Settings         RoomSettings    `bson:"settings" json:"settings"`
	LastActivity     time.Time       `bson:"last_activity" json:"lastActivity"`
	CreatedAt        time.Time       `bson:"created_at" json:"createdAt"`
}

const RoomStatusOpen = "open"
