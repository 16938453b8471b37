package service

import (
	"design_hub_backend/internal/model"
	"design_hub_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateForSubmission(t *testing.T) {
	valid := testChallenge()
	assert.NoError(t, ValidateForSubmission(valid))

	missingTitle := testChallenge()
	missingTitle.Title = "  "
	assert.ErrorIs(t, ValidateForSubmission(missingTitle), util.ErrChallengeNotReady)

	missingDescription := testChallenge()
	missingDescription.Description = ""
	assert.ErrorIs(t, ValidateForSubmission(missingDescription), util.ErrChallengeNotReady)

	negativeRubric := testChallenge()
	negativeRubric.Rubric = append(negativeRubric.Rubric, model.RubricItem{Criterion: "C.3", Points: -1})
	assert.ErrorIs(t, ValidateForSubmission(negativeRubric), util.ErrChallengeNotReady)

	// A generated draft with an empty rubric is still submittable.
	noRubric := testChallenge()
	noRubric.Rubric = nil
	assert.NoError(t, ValidateForSubmission(noRubric))
}

func TestChallengeEligibility(t *testing.T) {
	open := testChallenge()
	assert.True(t, open.OpenToAll())
	assert.True(t, open.EligibleFor("42"))

	assigned := testChallenge()
	assigned.AssignedStudentIDs = []string{"7", "42"}
	assert.False(t, assigned.OpenToAll())
	assert.True(t, assigned.EligibleFor("42"))
	assert.False(t, assigned.EligibleFor("99"))
}

func TestChallengeKeyFormat(t *testing.T) {
	assert.Equal(t, "Power Tools-G8", model.ChallengeKey(model.PowerTools, model.G8))
	assert.Equal(t, "3D Printing-G10", model.ChallengeKey(model.ThreeDPrinting, model.G10))
}

func TestChallengeStatusValid(t *testing.T) {
	for _, status := range []model.ChallengeStatus{
		model.StatusLocked, model.StatusAvailable, model.StatusInProgress,
		model.StatusSubmitted, model.StatusCompleted,
	} {
		assert.True(t, status.Valid(), string(status))
	}
	assert.False(t, model.ChallengeStatus("DONE").Valid())
	assert.False(t, model.ChallengeStatus("").Valid())
}
