package valuation

import (
	"cmp"
	"slices"

	"github.com/ndewijer/Investment-Club-Backend/internal/model"
)

// Apportion computes one member's share of the pooled fund.
//
// The share is the member's lifetime contributions divided by all contributions,
// independent of when each contribution was made. With no capital recorded the
// share is 0.
func Apportion(memberID string, contributions []model.Contribution, totalCapital, totalCurrentValue float64) model.MemberShare {
	share := model.MemberShare{MemberID: memberID}
	for _, c := range contributions {
		if c.MemberID == memberID {
			share.ContributedCapital += c.Amount
		}
	}

	if totalCapital > 0 {
		share.ShareFraction = share.ContributedCapital / totalCapital
	}
	share.CurrentValue = totalCurrentValue * share.ShareFraction
	share.Profit = share.CurrentValue - share.ContributedCapital

	return share
}

// ApportionAll computes the share of every member that appears in contributions, sorted by member ID.
func ApportionAll(contributions []model.Contribution, group model.GroupValuation) []model.MemberShare {
	seen := make(map[string]struct{})
	var members []string
	for _, c := range contributions {
		if _, ok := seen[c.MemberID]; ok {
			continue
		}
		seen[c.MemberID] = struct{}{}
		members = append(members, c.MemberID)
	}
	slices.SortFunc(members, cmp.Compare[string])

	shares := make([]model.MemberShare, 0, len(members))
	for _, id := range members {
		shares = append(shares, Apportion(id, contributions, group.TotalCapital, group.TotalCurrentValue))
	}
	return shares
}
