package similarity

import (
	"math"
	"sort"
	"time"
)

// Candidate is a stored quote with an embedding, as loaded for ranking.
type Candidate struct {
	QuoteID    string
	QuoteNo    string
	Client     string
	ModelRaw   string
	GrandTotal int64
	CreatedAt  time.Time
	Vector     []float64
}

// Match is a ranked similarity result. Score is in [-1, 1], rounded to four
// decimal places.
type Match struct {
	QuoteID    string
	QuoteNo    string
	Client     string
	ModelRaw   string
	GrandTotal int64
	CreatedAt  time.Time
	Score      float64
}

// Cosine computes the cosine similarity of two vectors. Vectors of unequal
// length compare over their common prefix; a zero vector scores 0.
func Cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}

	denom := math.Sqrt(na) * math.Sqrt(nb)
	if denom == 0 {
		return 0
	}
	return dot / denom
}

// Rank scores every candidate against the query vector and returns the top
// k matches, best first. Ties keep the more recent quote first.
func Rank(query []float64, candidates []Candidate, k int) []Match {
	matches := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		score := Cosine(query, c.Vector)
		matches = append(matches, Match{
			QuoteID:    c.QuoteID,
			QuoteNo:    c.QuoteNo,
			Client:     c.Client,
			ModelRaw:   c.ModelRaw,
			GrandTotal: c.GrandTotal,
			CreatedAt:  c.CreatedAt,
			Score:      math.Round(score*10000) / 10000,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})

	if k > 0 && len(matches) > k {
		matches = matches[:k]
	}
	return matches
}
