package attendance

import (
	"fmt"
	"math"
)

// RiskLevel classifies attendance standing against the 75% requirement.
type RiskLevel string

const (
	RiskSafe     RiskLevel = "Safe"
	RiskAtRisk   RiskLevel = "At Risk"
	RiskCritical RiskLevel = "Critical"
)

// Classification thresholds (percent).
const (
	safeThreshold     = 80.0
	requiredThreshold = 75.0
)

// Status is the classified standing of one course.
type Status struct {
	Level      RiskLevel `json:"level"`
	Percentage float64   `json:"percentage"`
}

// Classify derives the risk status for a record. No record (or zero classes)
// is Safe at 100%: the engine never penalizes missing data.
func Classify(r *Record) Status {
	if r == nil || r.Total == 0 {
		return Status{Level: RiskSafe, Percentage: 100}
	}
	pct := r.Percentage()
	switch {
	case pct >= safeThreshold:
		return Status{Level: RiskSafe, Percentage: pct}
	case pct >= requiredThreshold:
		return Status{Level: RiskAtRisk, Percentage: pct}
	default:
		return Status{Level: RiskCritical, Percentage: pct}
	}
}

// Insight is one forward-looking projection for a course.
type Insight struct {
	Kind    InsightKind `json:"kind"`
	Message string      `json:"message"`
}

// InsightKind identifies the projection type.
type InsightKind string

const (
	// InsightProjection estimates the percentage after two more absences.
	InsightProjection InsightKind = "projection"

	// InsightBunkable reports how many classes can still be missed at >=75%.
	InsightBunkable InsightKind = "bunkable"

	// InsightRecovery reports how many consecutive classes must be attended
	// to climb back to 75%.
	InsightRecovery InsightKind = "recovery"
)

// Insights derives the ordered predictive insights for a record.
// No insights are produced without data.
func Insights(r *Record) []Insight {
	if r == nil || r.Total == 0 {
		return nil
	}

	var insights []Insight

	futurePct := 100 * float64(r.Attended) / float64(r.Total+2)
	insights = append(insights, Insight{
		Kind: InsightProjection,
		Message: fmt.Sprintf("If you miss the next 2 classes, your attendance will drop to %.1f%%.",
			futurePct),
	})

	// Solving (attended)/(total+x) >= 0.75 for missable classes x, and
	// (attended+x)/(total+x) >= 0.75 for required recovery classes x.
	bunkable := int(math.Floor(float64(r.Attended)/0.75 - float64(r.Total)))
	if bunkable > 0 {
		insights = append(insights, Insight{
			Kind: InsightBunkable,
			Message: fmt.Sprintf("You can still miss %d more %s and stay above 75%%.",
				bunkable, pluralClasses(bunkable)),
		})
	} else if r.Percentage() < requiredThreshold {
		deficit := 0.75*float64(r.Total) - float64(r.Attended)
		needed := int(math.Ceil(math.Max(0, deficit/0.25)))
		insights = append(insights, Insight{
			Kind: InsightRecovery,
			Message: fmt.Sprintf("Attend the next %d %s to get back to 75%%.",
				needed, pluralClasses(needed)),
		})
	}

	return insights
}

// RecoveryClasses exposes the recovery count for tests and hosts.
func RecoveryClasses(r *Record) int {
	if r == nil || r.Total == 0 {
		return 0
	}
	deficit := 0.75*float64(r.Total) - float64(r.Attended)
	return int(math.Ceil(math.Max(0, deficit/0.25)))
}

func pluralClasses(n int) string {
	if n == 1 {
		return "class"
	}
	return "classes"
}
