package models

import "time"

// BookingStatus is the review-cycle state of an appointment request.
type BookingStatus string

const (
	BookingPending           BookingStatus = "pending"
	BookingPendingAdmin      BookingStatus = "pending_admin_confirmation"
	BookingConfirmed         BookingStatus = "confirmed"
	BookingRejected          BookingStatus = "rejected"
	BookingCancelled         BookingStatus = "cancelled"
	BookingCompleted         BookingStatus = "completed"
	BookingStatusFilterAll                 = "all"
)

// Booking is a client's request for a specific appointment time, held in
// pending_admin_confirmation until an administrator confirms or rejects it.
// ConfirmedDate/ConfirmedTime and MeetLink are set iff status is confirmed;
// RejectionReason is set iff status is rejected.
type Booking struct {
	ID              string        `bson:"id" json:"id"`
	UserID          string        `bson:"user_id" json:"userId"`
	FirstName       string        `bson:"first_name" json:"firstName"`
	LastName        string        `bson:"last_name" json:"lastName"`
	Email           string        `bson:"email" json:"email"`
	Phone           string        `bson:"phone" json:"phone"`
	ServiceType     string        `bson:"service_type" json:"serviceType"`
	SlotID          string        `bson:"slot_id" json:"slotId"`
	PreferredDate   string        `bson:"preferred_date" json:"preferredDate"` // "YYYY-MM-DD"
	PreferredTime   string        `bson:"preferred_time" json:"preferredTime"` // "HH:MM"
	ConfirmedDate   string        `bson:"confirmed_date,omitempty" json:"confirmedDate,omitempty"`
	ConfirmedTime   string        `bson:"confirmed_time,omitempty" json:"confirmedTime,omitempty"`
	Status          BookingStatus `bson:"status" json:"status"`
	RejectionReason string        `bson:"rejection_reason,omitempty" json:"rejectionReason,omitempty"`
	ConfirmedBy     string        `bson:"confirmed_by,omitempty" json:"confirmedBy,omitempty"`
	ReviewedBy      string        `bson:"reviewed_by,omitempty" json:"reviewedBy,omitempty"`
	MeetLink        string        `bson:"meet_link,omitempty" json:"meetLink,omitempty"`
	MedicalHistory  string        `bson:"medical_history,omitempty" json:"medicalHistory,omitempty"`
	CurrentConcerns string        `bson:"current_concerns,omitempty" json:"currentConcerns,omitempty"`
	SpecialRequests string        `bson:"special_requests,omitempty" json:"specialRequests,omitempty"`
	AdminNotes      string        `bson:"admin_notes,omitempty" json:"adminNotes,omitempty"`
	CreatedAt       time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time     `bson:"updated_at" json:"updatedAt"`
}

// BookingRequest is the client payload for requesting an appointment.
type BookingRequest struct {
	FirstName       string `json:"firstName" binding:"required"`
	LastName        string `json:"lastName" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Phone           string `json:"phone" binding:"required"`
	ServiceType     string `json:"serviceType" binding:"required"`
	SlotID          string `json:"slotId" binding:"required"`
	PreferredDate   string `json:"preferredDate" binding:"required"`
	PreferredTime   string `json:"preferredTime" binding:"required"`
	MedicalHistory  string `json:"medicalHistory,omitempty"`
	CurrentConcerns string `json:"currentConcerns,omitempty"`
	SpecialRequests string `json:"specialRequests,omitempty"`
}

// AdminDecision carries the reviewing admin's inputs for a confirm or
// reject action. Date/Time override the preferred fields when set.
type AdminDecision struct {
	AdminID       string `json:"adminId"`
	Reason        string `json:"reason,omitempty"`
	Notes         string `json:"notes,omitempty"`
	ConfirmedDate string `json:"confirmedDate,omitempty"`
	ConfirmedTime string `json:"confirmedTime,omitempty"`
}
