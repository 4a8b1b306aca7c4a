package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
	RoleAdmin    Role = "admin"
)

type SellerStatus string

const (
	SellerStatusNone     SellerStatus = "none"
	SellerStatusPending  SellerStatus = "pending"
	SellerStatusApproved SellerStatus = "approved"
	SellerStatusDenied   SellerStatus = "denied"
)

// User is the account record. Seller application state lives on the user
// document itself: sellerStatus is the authoritative state machine field and
// every transition is written with a compare-and-set on its current value.
type User struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Email    string             `json:"email" bson:"email"`
	Password string             `json:"-" bson:"password"`
	FullName string             `json:"fullName" bson:"fullName"`
	Role     Role               `json:"role" bson:"role"`

	// Seller application sub-state
	SellerStatus     SellerStatus       `json:"sellerStatus" bson:"sellerStatus"`
	SellerApp        *SellerApplication `json:"sellerApplication,omitempty" bson:"sellerApplication,omitempty"`
	SellerAppliedAt  *time.Time         `json:"sellerAppliedAt,omitempty" bson:"sellerAppliedAt,omitempty"`
	SellerApprovedAt *time.Time         `json:"sellerApprovedAt,omitempty" bson:"sellerApprovedAt,omitempty"`
	SellerDeniedAt   *time.Time         `json:"sellerDeniedAt,omitempty" bson:"sellerDeniedAt,omitempty"`
	CanReapplyAt     *time.Time         `json:"canReapplyAt,omitempty" bson:"canReapplyAt,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}
