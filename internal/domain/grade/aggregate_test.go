package grade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadbox/acadbox-engine/internal/domain/course"
	"github.com/acadbox/acadbox-engine/pkg/timeutil"
)

func newTestGrade(t *testing.T, gradeType Type, scored, total, weightage float64) *Grade {
	t.Helper()
	g, err := New("course-1", gradeType, "test grade", scored, total, weightage, timeutil.Date(2026, 3, 2))
	require.NoError(t, err)
	return g
}

func TestComputeStats_NoGradesReadsAsPerfect(t *testing.T) {
	stats := ComputeStats(nil)

	assert.Equal(t, 0, stats.Count)
	assert.Equal(t, 100.0, stats.Percentage)
	assert.Equal(t, 0.0, stats.CalibratedScore)
}

func TestComputeStats_CalibratedScoreAccumulates(t *testing.T) {
	quiz := newTestGrade(t, TypeQuiz, 45, 50, 20)

	stats := ComputeStats([]*Grade{quiz})
	// 20 * (45/50) = 18
	assert.InDelta(t, 18.0, stats.CalibratedScore, 1e-9)

	assignment := newTestGrade(t, TypeAssignment, 18, 20, 10)
	stats = ComputeStats([]*Grade{quiz, assignment})
	// 18 + 10 * (18/20) = 27
	assert.InDelta(t, 27.0, stats.CalibratedScore, 1e-9)
}

func TestComputeStats_CalibratedScoreStaysInRange(t *testing.T) {
	grades := []*Grade{
		newTestGrade(t, TypeQuiz, 10, 10, 25),
		newTestGrade(t, TypeAssignment, 0, 30, 25),
		newTestGrade(t, TypeMidSem, 22, 40, 25),
		newTestGrade(t, TypeEndSem, 60, 60, 25),
	}

	stats := ComputeStats(grades)
	assert.GreaterOrEqual(t, stats.CalibratedScore, 0.0)
	assert.LessOrEqual(t, stats.CalibratedScore, 100.0)
}

func TestComputeStats_SumsDuplicateExamGrades(t *testing.T) {
	// The aggregator never refuses duplicates; that is the availability
	// check's job. Two Mid-Sems just sum.
	grades := []*Grade{
		newTestGrade(t, TypeMidSem, 30, 40, 20),
		newTestGrade(t, TypeMidSem, 20, 40, 20),
	}

	stats := ComputeStats(grades)
	assert.Equal(t, 2, stats.Count)
	require.Len(t, stats.ByType, 1)
	assert.Equal(t, TypeMidSem, stats.ByType[0].Type)
	assert.Equal(t, 2, stats.ByType[0].Count)
	assert.InDelta(t, 50.0, stats.ByType[0].Scored, 1e-9)
}

func TestComputeStats_ByTypeFollowsCanonicalOrder(t *testing.T) {
	grades := []*Grade{
		newTestGrade(t, TypeEndSem, 50, 60, 30),
		newTestGrade(t, TypeQuiz, 8, 10, 10),
	}

	stats := ComputeStats(grades)
	require.Len(t, stats.ByType, 2)
	assert.Equal(t, TypeQuiz, stats.ByType[0].Type)
	assert.Equal(t, TypeEndSem, stats.ByType[1].Type)
}

func TestCanAddType(t *testing.T) {
	existing := []*Grade{
		newTestGrade(t, TypeQuiz, 8, 10, 10),
		newTestGrade(t, TypeMidSem, 30, 40, 20),
	}

	assert.True(t, CanAddType(existing, TypeQuiz))
	assert.True(t, CanAddType(existing, TypeAssignment))
	assert.True(t, CanAddType(existing, TypeEndSem))
	assert.False(t, CanAddType(existing, TypeMidSem))
}

func TestPerformanceIndex(t *testing.T) {
	courseA := &course.Course{ID: "a", Name: "Algorithms", Credits: 4, Semester: "Semester 1"}
	courseB := &course.Course{ID: "b", Name: "Databases", Credits: 2, Semester: "Semester 1"}
	courseC := &course.Course{ID: "c", Name: "Networks", Credits: 3, Semester: "Semester 1"}

	grades := map[string][]*Grade{
		"a": {newTestGrade(t, TypeQuiz, 45, 50, 20)},  // calibrated 18 -> 1.8/10
		"b": {newTestGrade(t, TypeQuiz, 30, 30, 100)}, // calibrated 100 -> 10/10
		"c": nil,                                      // no grades, excluded
	}
	gradesFor := func(id string) []*Grade { return grades[id] }

	got := PerformanceIndex([]*course.Course{courseA, courseB, courseC}, gradesFor)
	// (4*1.8 + 2*10) / 6 = 27.2/6
	assert.InDelta(t, 27.2/6, got, 1e-9)
}

func TestPerformanceIndex_NoQualifyingCourses(t *testing.T) {
	courseA := &course.Course{ID: "a", Name: "Algorithms", Credits: 4, Semester: "Semester 1"}
	gradesFor := func(string) []*Grade { return nil }

	assert.Equal(t, 0.0, PerformanceIndex([]*course.Course{courseA}, gradesFor))
}

func TestConfidenceFor(t *testing.T) {
	tests := []struct {
		name   string
		grades []*Grade
		want   Confidence
	}{
		{"no grades", nil, ConfidenceNew},
		{"strong", []*Grade{newTestGrade(t, TypeQuiz, 9, 10, 10)}, ConfidenceStrong},
		{"improving", []*Grade{newTestGrade(t, TypeQuiz, 7, 10, 10)}, ConfidenceImproving},
		{"needs attention", []*Grade{newTestGrade(t, TypeQuiz, 3, 10, 10)}, ConfidenceNeedsAttention},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConfidenceFor(tt.grades))
		})
	}
}
