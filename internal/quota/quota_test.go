package quota

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/pixelbrief/pixelbrief-backend/internal/models"
	"github.com/pixelbrief/pixelbrief-backend/internal/types"
)

var fee = decimal.NewFromInt(50)

func requestsWithStatuses(statuses ...string) []*models.ModificationRequest {
	requests := make([]*models.ModificationRequest, len(statuses))
	for i, s := range statuses {
		requests[i] = &models.ModificationRequest{RequestNumber: i + 1, Status: s}
	}
	return requests
}

func TestComputeEmpty(t *testing.T) {
	s := Compute(3, fee, nil)

	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 0, s.Used)
	assert.Equal(t, 3, s.Remaining)
	assert.Equal(t, 0, s.AdditionalUsed)
	assert.True(t, s.TotalAdditionalCost.IsZero())
	assert.False(t, s.IsLimitExceeded)
	assert.False(t, s.ShouldWarn)
	assert.Equal(t, "green", s.StatusColor)
}

func TestComputeOnlyCompletedConsumeQuota(t *testing.T) {
	s := Compute(3, fee, requestsWithStatuses(
		types.ModificationCompleted,
		types.ModificationApproved,
		types.ModificationInProgress,
		types.ModificationPending,
		types.ModificationRejected,
	))

	assert.Equal(t, 1, s.Used)
	assert.Equal(t, 2, s.Remaining)
	assert.Equal(t, 2, s.InProgress)
	assert.Equal(t, 0, s.AdditionalUsed)
}

func TestComputeWarnsOnLastRemaining(t *testing.T) {
	s := Compute(3, fee, requestsWithStatuses(
		types.ModificationCompleted,
		types.ModificationCompleted,
	))

	assert.Equal(t, 1, s.Remaining)
	assert.True(t, s.ShouldWarn)
	assert.False(t, s.IsLimitExceeded)
	assert.Equal(t, "orange", s.StatusColor)
}

func TestComputeExactlyExhausted(t *testing.T) {
	s := Compute(3, fee, requestsWithStatuses(
		types.ModificationCompleted,
		types.ModificationCompleted,
		types.ModificationCompleted,
	))

	assert.Equal(t, 3, s.Used)
	assert.Equal(t, 0, s.Remaining)
	assert.Equal(t, 0, s.AdditionalUsed)
	assert.True(t, s.IsLimitExceeded)
	assert.False(t, s.ShouldWarn)
	assert.True(t, s.TotalAdditionalCost.IsZero())
	assert.Equal(t, "red", s.StatusColor)
}

func TestComputeOverflowBillsAdditionalRounds(t *testing.T) {
	// 4 completed against a quota of 3: used caps at the total and the
	// overflow round is billed.
	s := Compute(3, fee, requestsWithStatuses(
		types.ModificationCompleted,
		types.ModificationCompleted,
		types.ModificationCompleted,
		types.ModificationCompleted,
	))

	assert.Equal(t, 3, s.Used)
	assert.Equal(t, 0, s.Remaining)
	assert.Equal(t, 1, s.AdditionalUsed)
	assert.True(t, s.IsLimitExceeded)
	assert.Equal(t, "50", s.TotalAdditionalCost.String())
}

func TestComputeDecimalFee(t *testing.T) {
	fractional, _ := decimal.NewFromString("49.99")

	s := Compute(1, fractional, requestsWithStatuses(
		types.ModificationCompleted,
		types.ModificationCompleted,
		types.ModificationCompleted,
	))

	assert.Equal(t, 2, s.AdditionalUsed)
	assert.Equal(t, "99.98", s.TotalAdditionalCost.String())
}

func TestComputeZeroQuota(t *testing.T) {
	s := Compute(0, fee, nil)

	assert.Equal(t, 0, s.Remaining)
	assert.True(t, s.IsLimitExceeded)
	assert.False(t, s.ShouldWarn)
}

func TestComputeNegativeTotalTreatedAsZero(t *testing.T) {
	s := Compute(-2, fee, requestsWithStatuses(types.ModificationCompleted))

	assert.Equal(t, 0, s.Total)
	assert.Equal(t, 1, s.AdditionalUsed)
}
