package scoring

import (
	"sort"

	"github.com/adeolu/candidate-ranker/internal/models"
)

// RankCandidates scores every profile independently against the same read-only
// criteria and returns the slice ordered by total score descending. Equal
// totals are ordered by CandidateID ascending so batch results do not depend
// on ingestion order. Empty input yields empty output.
func (s *Scorer) RankCandidates(profiles []*models.CandidateProfile, criteria models.RankingCriteria) []*models.CandidateProfile {
	for _, profile := range profiles {
		s.ScoreCandidate(profile, criteria)
	}

	ranked := make([]*models.CandidateProfile, len(profiles))
	copy(ranked, profiles)

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].CandidateID < ranked[j].CandidateID
	})

	return ranked
}
