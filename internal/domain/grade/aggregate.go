package grade

import (
	"github.com/acadbox/acadbox-engine/internal/domain/course"
)

// Stats is the aggregated performance of one course's grade set.
type Stats struct {
	Count         int     `json:"count"`
	TotalScored   float64 `json:"totalScored"`
	TotalPossible float64 `json:"totalPossible"`

	// Percentage is 100*scored/possible. An ungraded course reports 100 so
	// the absence of data never reads as failure; the same convention holds
	// in the attendance analyzer.
	Percentage float64 `json:"percentage"`

	// WeightedScore is the weightage-weighted sum of grade ratios, 0-100
	// when ratios are in [0,1] and weightages sum to at most 100.
	WeightedScore  float64 `json:"weightedScore"`
	TotalWeightage float64 `json:"totalWeightage"`

	// CalibratedScore equals WeightedScore when any weightage was assigned,
	// 0 otherwise. It is the basis for SPI/CPI.
	CalibratedScore float64 `json:"calibratedScore"`

	ByType []TypeStats `json:"byType"`
}

// TypeStats sums one grade type's contribution. Types with no grades are
// omitted from the breakdown.
type TypeStats struct {
	Type      Type    `json:"type"`
	Count     int     `json:"count"`
	Scored    float64 `json:"scored"`
	Total     float64 `json:"total"`
	Weightage float64 `json:"weightage"`
}

// ComputeStats aggregates a single course's grades.
// Duplicate Mid-Sem/End-Sem entries are summed like any other grade; refusing
// them is the caller-facing availability check, not the aggregator's concern.
func ComputeStats(grades []*Grade) Stats {
	stats := Stats{Count: len(grades)}

	byType := make(map[Type]*TypeStats, len(AllTypes))
	for _, g := range grades {
		stats.TotalScored += g.Scored
		stats.TotalPossible += g.Total
		stats.TotalWeightage += g.Weightage
		if g.Total > 0 {
			stats.WeightedScore += g.Ratio() * g.Weightage
		}

		ts, ok := byType[g.Type]
		if !ok {
			ts = &TypeStats{Type: g.Type}
			byType[g.Type] = ts
		}
		ts.Count++
		ts.Scored += g.Scored
		ts.Total += g.Total
		ts.Weightage += g.Weightage
	}

	switch {
	case stats.Count == 0:
		stats.Percentage = 100
	case stats.TotalPossible > 0:
		stats.Percentage = 100 * stats.TotalScored / stats.TotalPossible
	default:
		stats.Percentage = 0
	}

	if stats.TotalWeightage > 0 {
		stats.CalibratedScore = stats.WeightedScore
	}

	for _, t := range AllTypes {
		if ts, ok := byType[t]; ok {
			stats.ByType = append(stats.ByType, *ts)
		}
	}

	return stats
}

// CanAddType is the caller-facing availability check: Mid-Sem and End-Sem are
// allowed at most once per course, other types always.
func CanAddType(existing []*Grade, t Type) bool {
	if !t.IsExam() {
		return true
	}
	for _, g := range existing {
		if g.Type == t {
			return false
		}
	}
	return true
}

// PerformanceIndex computes the credit-weighted index (SPI over a semester's
// courses, CPI over all courses) on a 0-10 scale. Only courses with a positive
// calibrated score qualify; with no qualifying course the index is 0.
func PerformanceIndex(courses []*course.Course, gradesFor func(courseID string) []*Grade) float64 {
	totalCredits := 0
	weightedSum := 0.0

	for _, c := range courses {
		stats := ComputeStats(gradesFor(c.ID))
		if stats.CalibratedScore <= 0 {
			continue
		}
		gradeOutOf10 := stats.CalibratedScore / 10
		weightedSum += float64(c.Credits) * gradeOutOf10
		totalCredits += c.Credits
	}

	if totalCredits == 0 {
		return 0
	}
	return weightedSum / float64(totalCredits)
}

// Confidence labels a course's grade trajectory.
type Confidence string

const (
	ConfidenceNew            Confidence = "New"
	ConfidenceStrong         Confidence = "Strong"
	ConfidenceImproving      Confidence = "Improving"
	ConfidenceNeedsAttention Confidence = "Needs Attention"
)

// ConfidenceFor derives the indicator from a course's grades.
func ConfidenceFor(grades []*Grade) Confidence {
	if len(grades) == 0 {
		return ConfidenceNew
	}
	stats := ComputeStats(grades)
	switch {
	case stats.Percentage >= 80:
		return ConfidenceStrong
	case stats.Percentage >= 60:
		return ConfidenceImproving
	default:
		return ConfidenceNeedsAttention
	}
}
