package attendance

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		record   *Record
		wantRisk RiskLevel
		wantPct  float64
	}{
		{"no record", nil, RiskSafe, 100},
		{"no classes yet", &Record{CourseID: "c", Attended: 0, Total: 0}, RiskSafe, 100},
		{"safe", &Record{CourseID: "c", Attended: 17, Total: 20}, RiskSafe, 85},
		{"exactly eighty", &Record{CourseID: "c", Attended: 16, Total: 20}, RiskSafe, 80},
		{"at risk", &Record{CourseID: "c", Attended: 15, Total: 20}, RiskAtRisk, 75},
		{"critical", &Record{CourseID: "c", Attended: 14, Total: 20}, RiskCritical, 70},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.record)
			assert.Equal(t, tt.wantRisk, got.Level)
			assert.InDelta(t, tt.wantPct, got.Percentage, 1e-9)
		})
	}
}

func TestInsights_CriticalRecordNeedsFourClasses(t *testing.T) {
	r := &Record{CourseID: "c", Attended: 14, Total: 20}

	// needed = ceil((0.75*20 - 14) / 0.25) = 4
	assert.Equal(t, 4, RecoveryClasses(r))

	insights := Insights(r)
	require.Len(t, insights, 2)
	assert.Equal(t, InsightProjection, insights[0].Kind)
	assert.Equal(t, InsightRecovery, insights[1].Kind)
	assert.Contains(t, insights[1].Message, "4 classes")
}

func TestInsights_ProjectionComesFirst(t *testing.T) {
	r := &Record{CourseID: "c", Attended: 18, Total: 20}

	insights := Insights(r)
	require.NotEmpty(t, insights)
	assert.Equal(t, InsightProjection, insights[0].Kind)
	// 100*18/22 = 81.8
	assert.Contains(t, insights[0].Message, "81.8%")
}

func TestInsights_BunkableWhenComfortablyAbove(t *testing.T) {
	r := &Record{CourseID: "c", Attended: 18, Total: 20}

	insights := Insights(r)
	require.Len(t, insights, 2)
	assert.Equal(t, InsightBunkable, insights[1].Kind)
	// floor(18/0.75 - 20) = 4
	assert.Contains(t, insights[1].Message, "4 more classes")
}

func TestInsights_NoDataNoInsights(t *testing.T) {
	assert.Nil(t, Insights(nil))
	assert.Nil(t, Insights(&Record{CourseID: "c"}))
}

func TestRecoveryClasses_RoundTrip(t *testing.T) {
	// Attending the reported number of classes from any sub-75% state must
	// land at or above 75%.
	for total := 1; total <= 40; total++ {
		for attended := 0; attended <= total; attended++ {
			r := &Record{CourseID: "c", Attended: attended, Total: total}
			if r.Percentage() >= 75 {
				continue
			}
			needed := RecoveryClasses(r)
			recovered := &Record{
				CourseID: "c",
				Attended: attended + needed,
				Total:    total + needed,
			}
			assert.GreaterOrEqual(t, recovered.Percentage(), 75.0,
				fmt.Sprintf("attended=%d total=%d needed=%d", attended, total, needed))
		}
	}
}

func TestRecordValidate(t *testing.T) {
	assert.NoError(t, (&Record{CourseID: "c", Attended: 3, Total: 5}).Validate())
	assert.Error(t, (&Record{CourseID: "c", Attended: 6, Total: 5}).Validate())
	assert.Error(t, (&Record{CourseID: "c", Attended: -1, Total: 5}).Validate())
}
