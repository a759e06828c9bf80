package match

import (
	"sort"
)

// Weights of the combined score.
const (
	nameWeight = 0.7
	descWeight = 0.3
)

// DefaultMinScore is the combined score a candidate needs to be suggested.
const DefaultMinScore = 0.5

// Member is a method record reduced to what ranking looks at.
type Member struct {
	Name string
	Desc string
}

// String renders the member as name+desc.
func (m Member) String() string {
	return m.Name + m.Desc
}

// Candidate is one scored member.
type Candidate struct {
	Member Member

	NameScore float64
	DescScore float64

	// Score combines the name and descriptor similarity, higher is better.
	Score float64
}

// CandidateList is a ranked list of candidates.
type CandidateList []Candidate

// Rank scores every candidate against every spelling of the target and keeps
// the best spelling per candidate. Targets typically hold the symbolic and
// the runtime name of the same method.
func Rank(targets []Member, candidates []Member) CandidateList {
	if len(targets) == 0 {
		return nil
	}

	list := make(CandidateList, 0, len(candidates))

	for _, cand := range candidates {
		best := Candidate{Member: cand, Score: -1}

		for _, target := range targets {
			nameScore := NameSimilarity(cand.Name, target.Name)
			if cand.Name == target.Name {
				nameScore = 1.0
			}

			descScore := Similarity(cand.Desc, target.Desc)
			score := nameScore*nameWeight + descScore*descWeight

			if score > best.Score {
				best.NameScore = nameScore
				best.DescScore = descScore
				best.Score = score
			}
		}

		list = append(list, best)
	}

	sort.Stable(list)

	return list
}

// Suggest returns up to n of the best ranked candidates scoring at least
// DefaultMinScore, rendered as name+desc.
func Suggest(targets []Member, candidates []Member, n int) []string {
	ranked := Rank(targets, candidates).AboveThreshold(DefaultMinScore).Top(n)
	if len(ranked) == 0 {
		return nil
	}

	out := make([]string, len(ranked))
	for i, c := range ranked {
		out[i] = c.Member.String()
	}

	return out
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less orders by score descending, then by name and descriptor.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	if c[i].Member.Name != c[j].Member.Name {
		return c[i].Member.Name < c[j].Member.Name
	}

	return c[i].Member.Desc < c[j].Member.Desc
}

// Top returns the first n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n < 0 || n >= len(c) {
		return c
	}

	return c[:n]
}

// Best returns the best candidate, or nil if the list is empty.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// AboveThreshold returns the candidates scoring at least threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var out CandidateList

	for _, cand := range c {
		if cand.Score >= threshold {
			out = append(out, cand)
		}
	}

	return out
}
