// Package quota computes a project's modification-quota state from its
// contract total and the list of modification requests. The arithmetic is
// pure; the service layer owns loading the inputs.
package quota

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pixelbrief/pixelbrief-backend/internal/models"
	"github.com/pixelbrief/pixelbrief-backend/internal/types"
)

// Summary is the computed quota state for one project.
type Summary struct {
	Total               int
	Used                int
	Remaining           int
	InProgress          int
	AdditionalUsed      int
	TotalAdditionalCost decimal.Decimal
	StatusColor         string
	StatusMessage       string
	IsLimitExceeded     bool
	ShouldWarn          bool
}

// Compute derives the quota summary. Completed requests consume the free
// quota first; every completed request past the quota counts as an
// additional-cost round billed at feePerUnit.
func Compute(total int, feePerUnit decimal.Decimal, requests []*models.ModificationRequest) Summary {
	if total < 0 {
		total = 0
	}

	completed := 0
	inProgress := 0
	for _, r := range requests {
		switch r.Status {
		case types.ModificationCompleted:
			completed++
		case types.ModificationInProgress, types.ModificationApproved:
			inProgress++
		}
	}

	used := completed
	if used > total {
		used = total
	}
	additionalUsed := completed - used
	remaining := total - used

	s := Summary{
		Total:               total,
		Used:                used,
		Remaining:           remaining,
		InProgress:          inProgress,
		AdditionalUsed:      additionalUsed,
		TotalAdditionalCost: feePerUnit.Mul(decimal.NewFromInt(int64(additionalUsed))),
		IsLimitExceeded:     remaining == 0,
		ShouldWarn:          remaining == 1,
	}

	switch {
	case s.IsLimitExceeded:
		s.StatusColor = "red"
		if additionalUsed > 0 {
			s.StatusMessage = fmt.Sprintf("Free modifications used up; %d additional round(s) billed", additionalUsed)
		} else {
			s.StatusMessage = "All free modifications have been used; further rounds incur additional cost"
		}
	case s.ShouldWarn:
		s.StatusColor = "orange"
		s.StatusMessage = "Only 1 free modification remaining"
	default:
		s.StatusColor = "green"
		s.StatusMessage = fmt.Sprintf("%d of %d free modifications remaining", remaining, total)
	}

	return s
}
