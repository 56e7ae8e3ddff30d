package core

import (
	"math"
	"slices"
	"strings"
)

// CosineSimilarity computes the cosine of the angle between two vectors.
// Identical directions score 1.0, orthogonal directions 0.0. If either
// vector has zero magnitude the similarity is 0. Vectors of different
// lengths are compared over their common prefix.
func CosineSimilarity(a, b []float32) float32 {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < minLen; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	for i := minLen; i < len(a); i++ {
		normA += float64(a[i]) * float64(a[i])
	}
	for i := minLen; i < len(b); i++ {
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}

// TopMatches sorts matches by descending score and truncates to limit.
// A negative limit returns all matches. The input slice is sorted in place.
func TopMatches(matches []Match, limit int) []Match {
	slices.SortFunc(matches, func(a, b Match) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		// Stable ordering for equal scores
		return strings.Compare(a.Id, b.Id)
	})

	if limit >= 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
