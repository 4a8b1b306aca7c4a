package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SubmissionStatus string

const (
	SubmissionStatusPending  SubmissionStatus = "pending"
	SubmissionStatusApproved SubmissionStatus = "approved"
	SubmissionStatusRejected SubmissionStatus = "rejected"
)

// EventSubmission is a seller's proposal for a publishable event. It becomes
// a customer-visible Event only when an admin approves it; the slug is
// assigned exactly once, at approval.
type EventSubmission struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	SellerID primitive.ObjectID `json:"sellerId" bson:"sellerId"`

	Title          string  `json:"title" bson:"title" validate:"required"`
	Description    string  `json:"description" bson:"description" validate:"required"`
	Date           string  `json:"date" bson:"date" validate:"required"`
	Time           string  `json:"time" bson:"time" validate:"required"`
	Venue          string  `json:"venue" bson:"venue" validate:"required"`
	TicketPrice    float64 `json:"ticketPrice" bson:"ticketPrice" validate:"gte=0"`
	ImageURL       string  `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	OrganizerEmail string  `json:"organizerEmail" bson:"organizerEmail" validate:"required,email"`

	Status        SubmissionStatus `json:"status" bson:"status"`
	SubmittedAt   time.Time        `json:"submittedAt" bson:"submittedAt"`
	DecidedAt     *time.Time       `json:"decidedAt,omitempty" bson:"decidedAt,omitempty"`
	AdminFeedback string           `json:"adminFeedback,omitempty" bson:"adminFeedback,omitempty"`
	Slug          string           `json:"slug,omitempty" bson:"slug,omitempty"`
}

// SubmissionFilter narrows List queries. Zero values mean "no constraint";
// the admin view is the only one allowed to cross seller boundaries.
type SubmissionFilter struct {
	SellerID    primitive.ObjectID
	Status      SubmissionStatus
	IsAdminView bool
}
