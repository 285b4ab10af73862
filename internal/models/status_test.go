package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRewardRequestStatus(t *testing.T) {
	for _, status := range AllRewardRequestStatuses {
		parsed, ok := ParseRewardRequestStatus(status.String())
		assert.True(t, ok, status)
		assert.Equal(t, status, parsed)
	}

	// Wire spellings are exact, including case and punctuation
	for _, bad := range []string{"", "pending verification", "Approved", "Approved-Review Pending", "Completed"} {
		_, ok := ParseRewardRequestStatus(bad)
		assert.False(t, ok, bad)
	}
}

func TestRewardRequestStatusValid(t *testing.T) {
	assert.True(t, StatusPaymentPending.Valid())
	assert.False(t, RewardRequestStatus("Shipped").Valid())
}

func TestRewardRequestStatusTerminal(t *testing.T) {
	assert.True(t, StatusPaymentCompleted.Terminal())
	assert.True(t, StatusRejected.Terminal())
	assert.False(t, StatusPendingVerification.Terminal())
	assert.False(t, StatusReviewSubmitted.Terminal())
}

func TestRewardCommentSystem(t *testing.T) {
	system := RewardComment{UserID: SystemCommentAuthor}
	assert.True(t, system.System())

	user := RewardComment{UserID: "u1"}
	assert.False(t, user.System())
}
