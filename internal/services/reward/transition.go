package reward

import (
	"fmt"

	"github.com/smarterpicks/backend/internal/models"
)

// transitions is the authoritative state machine for reward requests. It is
// enforced server-side regardless of what next-status lists any client
// renders.
var transitions = map[models.RewardRequestStatus][]models.RewardRequestStatus{
	models.StatusPendingVerification: {
		models.StatusApprovedReviewPending,
		models.StatusRejected,
	},
	models.StatusApprovedReviewPending: {
		models.StatusReviewSubmitted,
		models.StatusRejected,
	},
	models.StatusReviewSubmitted: {
		models.StatusPaymentPending,
		models.StatusRejected,
	},
	models.StatusPaymentPending: {
		models.StatusPaymentCompleted,
		models.StatusRejected,
	},
	// Terminal states
	models.StatusPaymentCompleted: {},
	models.StatusRejected:         {},
}

// CanTransition reports whether target is in the outgoing-edge set of from.
func CanTransition(from, to models.RewardRequestStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// transitionKey identifies a (from, to) status pair in the comment template
// table.
type transitionKey struct {
	From models.RewardRequestStatus
	To   models.RewardRequestStatus
}

// transitionComments maps each known transition to its audit comment
// template. %s is the acting user's display name.
var transitionComments = map[transitionKey]string{
	// Verification decision
	{models.StatusPendingVerification, models.StatusApprovedReviewPending}: "Request has been approved by %s.",
	{models.StatusPendingVerification, models.StatusRejected}:              "Request has been rejected by %s.",

	// After approval
	{models.StatusApprovedReviewPending, models.StatusReviewSubmitted}: "Amazon review submitted by %s.",
	{models.StatusApprovedReviewPending, models.StatusRejected}:        "Request was rejected by %s.",

	// Review submission processing
	{models.StatusReviewSubmitted, models.StatusPaymentPending}: "Review has been verified by %s. Payment is now pending.",
	{models.StatusReviewSubmitted, models.StatusRejected}:       "Review submission was rejected by %s.",

	// Payment processing
	{models.StatusPaymentPending, models.StatusPaymentCompleted}: "Payment has been successfully completed by %s.",
	{models.StatusPaymentPending, models.StatusRejected}:         "Payment request has been rejected by %s.",
}

// statusChangeComment renders the audit comment for a status change,
// substituting the acting user's display name. Unmapped pairs fall back to a
// generic message.
func statusChangeComment(from, to models.RewardRequestStatus, userName string) string {
	if tmpl, ok := transitionComments[transitionKey{From: from, To: to}]; ok {
		return fmt.Sprintf(tmpl, userName)
	}
	return fmt.Sprintf("Status changed from %s to %s by %s.", from, to, userName)
}
