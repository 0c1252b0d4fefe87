package template

import (
	"math"
	"sort"
	"strings"
)

// Candidate is one qualifying template with its keyword-coverage confidence
type Candidate struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// Match is the classification outcome: the winning template plus the ranked
// candidate list (capped at 5).
type Match struct {
	Name       string      `json:"name"`
	Confidence float64     `json:"confidence"`
	AllMatches []Candidate `json:"all_matches"`
}

// maxCandidates caps the ranked candidate list returned to callers
const maxCandidates = 5

// Classify scores every catalog template against the given column names and
// picks the best match.
//
// A keyword counts as matched when any column name contains it as a
// case-insensitive substring. A template qualifies as a candidate when its
// matched-keyword count reaches MinMatches. The winner is the candidate with
// the highest raw match count, not the highest confidence percentage;
// registration order breaks ties. When nothing qualifies the classifier
// falls back to DefaultTemplateName with confidence 0.
func Classify(columns []string) Match {
	lower := make([]string, len(columns))
	for i, col := range columns {
		lower[i] = strings.ToLower(col)
	}

	bestName := ""
	bestScore := 0
	var candidates []Candidate

	for _, def := range Catalog() {
		matches := 0
		for _, keyword := range def.Keywords {
			for _, col := range lower {
				if strings.Contains(col, keyword) {
					matches++
					break
				}
			}
		}

		confidence := roundPct(matches, len(def.Keywords))

		if matches >= def.MinMatches {
			candidates = append(candidates, Candidate{
				Name:       def.Name,
				Confidence: confidence,
			})
			if matches > bestScore {
				bestScore = matches
				bestName = def.Name
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})
	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}

	if bestName == "" {
		bestName = DefaultTemplateName
	}

	// Winner confidence is recomputed against the winner's own keyword list;
	// the fallback path reports 0 because bestScore is still 0.
	keywordCount := 1
	if def, ok := Lookup(bestName); ok && len(def.Keywords) > 0 {
		keywordCount = len(def.Keywords)
	}

	return Match{
		Name:       bestName,
		Confidence: roundPct(bestScore, keywordCount),
		AllMatches: candidates,
	}
}

// roundPct computes matched/total*100 rounded to one decimal place
func roundPct(matched, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(matched)/float64(total)*1000) / 10
}
