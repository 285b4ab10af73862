package models

// RewardRequestStatus is the lifecycle stage of a reward request. The string
// values are consumed by the storefront and admin front ends and must keep
// these exact spellings.
type RewardRequestStatus string

const (
	StatusPendingVerification   RewardRequestStatus = "Pending Verification"
	StatusApprovedReviewPending RewardRequestStatus = "Approved - Review Pending"
	StatusReviewSubmitted       RewardRequestStatus = "Review Submitted"
	StatusPaymentPending        RewardRequestStatus = "Payment Pending"
	StatusPaymentCompleted      RewardRequestStatus = "Payment Completed"
	StatusRejected              RewardRequestStatus = "Rejected"
)

// AllRewardRequestStatuses lists every status in workflow order.
var AllRewardRequestStatuses = []RewardRequestStatus{
	StatusPendingVerification,
	StatusApprovedReviewPending,
	StatusReviewSubmitted,
	StatusPaymentPending,
	StatusPaymentCompleted,
	StatusRejected,
}

// ParseRewardRequestStatus maps a wire string to a status value.
func ParseRewardRequestStatus(s string) (RewardRequestStatus, bool) {
	for _, status := range AllRewardRequestStatuses {
		if string(status) == s {
			return status, true
		}
	}
	return "", false
}

// Valid reports whether the status is one of the known workflow stages.
func (s RewardRequestStatus) Valid() bool {
	_, ok := ParseRewardRequestStatus(string(s))
	return ok
}

func (s RewardRequestStatus) String() string {
	return string(s)
}

// Terminal reports whether the status has no outgoing transitions.
func (s RewardRequestStatus) Terminal() bool {
	return s == StatusPaymentCompleted || s == StatusRejected
}
