package skilltree

import (
	"sort"

	"github.com/harukigames/gamecore/internal/domain"
)

// TopInvestorCount is the number of characters shown in a line's ranking.
const TopInvestorCount = 5

// buildSummary aggregates raw line investments into per-character totals and
// a top-investor ranking. Ties on points are broken by earliest first unlock,
// then by character ID for a stable order.
func buildSummary(skillLineID int, investments []domain.LineInvestment) *domain.InvestmentSummary {
	type investor struct {
		rank domain.InvestorRank
	}

	byCharacter := make(map[string]*investor)
	total := 0

	for _, inv := range investments {
		total += inv.PointsSpent

		entry, ok := byCharacter[inv.CharacterID]
		if !ok {
			byCharacter[inv.CharacterID] = &investor{rank: domain.InvestorRank{
				CharacterID:   inv.CharacterID,
				CharacterName: inv.CharacterName,
				PointsSpent:   inv.PointsSpent,
				FirstUnlockAt: inv.UnlockedAt,
			}}
			continue
		}

		entry.rank.PointsSpent += inv.PointsSpent
		if inv.UnlockedAt.Before(entry.rank.FirstUnlockAt) {
			entry.rank.FirstUnlockAt = inv.UnlockedAt
		}
	}

	ranks := make([]domain.InvestorRank, 0, len(byCharacter))
	for _, entry := range byCharacter {
		ranks = append(ranks, entry.rank)
	}

	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].PointsSpent != ranks[j].PointsSpent {
			return ranks[i].PointsSpent > ranks[j].PointsSpent
		}
		if !ranks[i].FirstUnlockAt.Equal(ranks[j].FirstUnlockAt) {
			return ranks[i].FirstUnlockAt.Before(ranks[j].FirstUnlockAt)
		}
		return ranks[i].CharacterID < ranks[j].CharacterID
	})

	if len(ranks) > TopInvestorCount {
		ranks = ranks[:TopInvestorCount]
	}

	summary := &domain.InvestmentSummary{
		SkillLineID:    skillLineID,
		TotalPoints:    total,
		CharacterCount: len(byCharacter),
		TopInvestors:   ranks,
	}
	if summary.CharacterCount > 0 {
		summary.AveragePoints = float64(total) / float64(summary.CharacterCount)
	}
	return summary
}
