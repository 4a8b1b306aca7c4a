package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is the published, customer-visible record. It is created exclusively
// by the approval flow from an approved EventSubmission — never directly by
// a seller.
type Event struct {
	ID                 primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	SellerID           primitive.ObjectID `json:"sellerId" bson:"sellerId"`
	SourceSubmissionID primitive.ObjectID `json:"sourceSubmissionId" bson:"sourceSubmissionId"`

	Title          string  `json:"title" bson:"title"`
	Description    string  `json:"description" bson:"description"`
	Date           string  `json:"date" bson:"date"`
	Time           string  `json:"time" bson:"time"`
	Venue          string  `json:"venue" bson:"venue"`
	TicketPrice    float64 `json:"ticketPrice" bson:"ticketPrice"`
	ImageURL       string  `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	OrganizerEmail string  `json:"organizerEmail" bson:"organizerEmail"`

	Slug     string `json:"slug" bson:"slug"`
	IsActive bool   `json:"isActive" bson:"isActive"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}
