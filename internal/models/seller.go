package models

import "time"

// SellerApplication holds the business details a customer submits when
// applying for seller status. One active application per account: the
// document is embedded on the user and replaced wholesale on re-application.
type SellerApplication struct {
	BusinessName string `json:"businessName" bson:"businessName" validate:"required"`
	BusinessType string `json:"businessType" bson:"businessType" validate:"required"`
	ContactEmail string `json:"contactEmail" bson:"contactEmail" validate:"required,email"`
	ContactPhone string `json:"contactPhone,omitempty" bson:"contactPhone,omitempty"`
	Description  string `json:"description,omitempty" bson:"description,omitempty"`

	AppliedAt  time.Time  `json:"appliedAt" bson:"appliedAt"`
	DecidedAt  *time.Time `json:"decidedAt,omitempty" bson:"decidedAt,omitempty"`
	AdminNotes string     `json:"adminNotes,omitempty" bson:"adminNotes,omitempty"`

	// Advisory risk screening. Never transitions state on its own; admins
	// see the score and flags in the review queue.
	RiskScore int      `json:"riskScore" bson:"riskScore"`
	RiskFlags []string `json:"riskFlags,omitempty" bson:"riskFlags,omitempty"`
}

// SellerStatusSnapshot is what Apply and GetStatus return to callers.
type SellerStatusSnapshot struct {
	Status            SellerStatus `json:"sellerStatus"`
	CanApply          bool         `json:"canApply"`
	DaysUntilReapply  int          `json:"daysUntilReapply"`
	AppliedAt         *time.Time   `json:"appliedAt,omitempty"`
	ApprovedAt        *time.Time   `json:"approvedAt,omitempty"`
	DeniedAt          *time.Time   `json:"deniedAt,omitempty"`
	CanReapplyAt      *time.Time   `json:"canReapplyAt,omitempty"`
	RiskScore         int          `json:"-"`
	RiskFlagsInternal []string     `json:"-"`
}
