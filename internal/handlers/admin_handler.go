package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stagepass/ticketing-backend/internal/core/domain"
	"github.com/stagepass/ticketing-backend/internal/models"
	"github.com/stagepass/ticketing-backend/internal/services/approval"
	"github.com/stagepass/ticketing-backend/internal/services/submission"
	"github.com/stagepass/ticketing-backend/utils"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/refund"
)

// AdminHandler exposes the review queues, the decision endpoints and refund
// management. All routes are behind RoleMiddleware("admin").
type AdminHandler struct {
	approvals   approval.Service
	submissions submission.Service
	accounts    domain.AccountRepository
	orders      domain.OrderRepository
}

func NewAdminHandler(approvals approval.Service, submissions submission.Service, accounts domain.AccountRepository, orders domain.OrderRepository) *AdminHandler {
	return &AdminHandler{
		approvals:   approvals,
		submissions: submissions,
		accounts:    accounts,
		orders:      orders,
	}
}

// ListSellerApplications handles GET /api/v1/admin/seller-applications.
func (h *AdminHandler) ListSellerApplications(c *gin.Context) {
	users, err := h.accounts.ListPendingApplications(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	type row struct {
		AccountID   string                    `json:"accountId"`
		Email       string                    `json:"email"`
		FullName    string                    `json:"fullName"`
		Application *models.SellerApplication `json:"application"`
	}
	rows := make([]row, 0, len(users))
	for _, u := range users {
		rows = append(rows, row{
			AccountID:   u.ID.Hex(),
			Email:       u.Email,
			FullName:    u.FullName,
			Application: u.SellerApp,
		})
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Pending seller applications", gin.H{
		"applications": rows,
		"total":        len(rows),
	}))
}

type sellerDecisionInput struct {
	Decision string `json:"decision" binding:"required"`
	Notes    string `json:"notes"`
}

// DecideSellerApplication handles POST /api/v1/admin/seller-applications/:accountId/decision.
func (h *AdminHandler) DecideSellerApplication(c *gin.Context) {
	accountID, err := primitiveIDFromHex(c.Param("accountId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid account id"))
		return
	}

	var input sellerDecisionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid JSON format"))
		return
	}

	user, err := h.approvals.DecideSellerApplication(c.Request.Context(), accountID, input.Decision, input.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Decision recorded", gin.H{
		"accountId":    user.ID.Hex(),
		"role":         user.Role,
		"sellerStatus": user.SellerStatus,
		"canReapplyAt": user.CanReapplyAt,
	}))
}

// ListSubmissions handles GET /api/v1/admin/submissions.
func (h *AdminHandler) ListSubmissions(c *gin.Context) {
	callerID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse("Invalid or missing token"))
		return
	}

	filter := models.SubmissionFilter{
		Status:      models.SubmissionStatus(c.Query("status")),
		IsAdminView: true,
	}
	if sellerID := c.Query("sellerId"); sellerID != "" {
		id, err := primitiveIDFromHex(sellerID)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid seller id"))
			return
		}
		filter.SellerID = id
	}

	subs, err := h.submissions.List(c.Request.Context(), callerID, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Submissions", gin.H{
		"submissions": subs,
		"total":       len(subs),
	}))
}

type submissionDecisionInput struct {
	Decision string `json:"decision" binding:"required"`
	Feedback string `json:"feedback"`
}

// DecideSubmission handles POST /api/v1/admin/submissions/:id/decision.
func (h *AdminHandler) DecideSubmission(c *gin.Context) {
	submissionID, err := primitiveIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid submission id"))
		return
	}

	var input submissionDecisionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid JSON format"))
		return
	}

	result, err := h.approvals.DecideEventSubmission(c.Request.Context(), submissionID, input.Decision, input.Feedback)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{"newStatus": result.NewStatus}
	if result.NewStatus == models.SubmissionStatusApproved {
		resp["eventId"] = result.EventID.Hex()
		resp["slug"] = result.Slug
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("Decision recorded", resp))
}

// RefundOrder handles POST /api/v1/admin/orders/:id/refund. The refund
// itself is Stripe's; we only record the outcome.
func (h *AdminHandler) RefundOrder(c *gin.Context) {
	orderID, err := primitiveIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid order id"))
		return
	}

	order, err := h.orders.GetByID(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	if order.Status != models.OrderStatusPaid {
		respondError(c, domain.ErrOrderNotPaid)
		return
	}

	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(order.PaymentID),
	}
	ref, err := refund.New(params)
	if err != nil {
		logrus.WithError(err).WithField("orderId", order.ID.Hex()).Error("stripe refund failed")
		c.JSON(http.StatusBadGateway, utils.ErrorResponse("Refund could not be processed"))
		return
	}

	if err := h.orders.MarkRefunded(c.Request.Context(), order.ID, ref.ID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Order refunded", gin.H{
		"orderId":  order.ID.Hex(),
		"refundId": ref.ID,
	}))
}
