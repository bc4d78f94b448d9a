package pipeline

import (
	"errors"
	"testing"

	"github.com/sfmta/transitreport/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestCountKindCountsMatchingProblemsOnly(t *testing.T) {
	problems := []model.Problem{
		{Kind: model.ProblemBunch, Stop: "A"},
		{Kind: model.ProblemGap, Stop: "B"},
		{Kind: model.ProblemBunch, Stop: "C"},
	}
	assert.Equal(t, 2, countKind(problems, model.ProblemBunch))
	assert.Equal(t, 1, countKind(problems, model.ProblemGap))
}

func TestCountKindEmptyInput(t *testing.T) {
	assert.Equal(t, 0, countKind(nil, model.ProblemBunch))
}

func TestRouteFailureErrorNamesRouteAndStage(t *testing.T) {
	f := routeFailure{RouteID: "14", Stage: "load schedule", Err: errors.New("boom")}
	assert.Equal(t, "route 14 at load schedule: boom", f.Error())
}
