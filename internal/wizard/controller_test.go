package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tsenako/console-service/pkg/util/errorutil"
)

func twoStepController(submitter Submitter) *Controller {
	steps := []Step{
		{Index: 1, Name: "identite", Required: []string{"nom", "email"}},
		{Index: 2, Name: "documents", Required: []string{"cin"}},
	}
	return NewController(steps, submitter)
}

func noopSubmitter() Submitter {
	return SubmitterFunc(func(context.Context, map[string]any) error { return nil })
}

func TestAdvanceStaysOnValidationFailure(t *testing.T) {
	ctrl := twoStepController(noopSubmitter())
	ctrl.SetField("email", "hery@example.mg")

	require.False(t, ctrl.Advance())
	assert.Equal(t, 1, ctrl.Current())
	assert.Equal(t, "nom is required", ctrl.Errors()["nom"])
	assert.NotContains(t, ctrl.Errors(), "email")
}

func TestSetFieldClearsFieldError(t *testing.T) {
	ctrl := twoStepController(noopSubmitter())
	require.False(t, ctrl.Advance())
	require.Contains(t, ctrl.Errors(), "nom")

	ctrl.SetField("nom", "Rakoto")
	assert.NotContains(t, ctrl.Errors(), "nom")

	ctrl.SetField("email", "rakoto@example.mg")
	require.True(t, ctrl.Advance())
	assert.Equal(t, 2, ctrl.Current())
	assert.Empty(t, ctrl.Errors())
}

func TestNavigationIsClamped(t *testing.T) {
	ctrl := twoStepController(noopSubmitter())
	ctrl.Retreat()
	assert.Equal(t, 1, ctrl.Current())

	ctrl.SetField("nom", "Rakoto")
	ctrl.SetField("email", "rakoto@example.mg")
	ctrl.SetField("cin", &FileRef{Name: "cin.pdf", StorageKey: "docs/cin.pdf", SizeBytes: 1024})
	require.True(t, ctrl.Advance())
	require.True(t, ctrl.Advance())
	assert.Equal(t, 2, ctrl.Current())
}

func TestRetreatSkipsValidation(t *testing.T) {
	ctrl := twoStepController(noopSubmitter())
	ctrl.SetField("nom", "Rakoto")
	ctrl.SetField("email", "rakoto@example.mg")
	require.True(t, ctrl.Advance())

	ctrl.Retreat()
	assert.Equal(t, 1, ctrl.Current())
	assert.Empty(t, ctrl.Errors())
}

func TestSubmitOnlyFromLastStep(t *testing.T) {
	ctrl := twoStepController(noopSubmitter())
	err := ctrl.Submit(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "INVALID_STATE"))
}

func TestSubmitValidatesLastStep(t *testing.T) {
	ctrl := twoStepController(noopSubmitter())
	ctrl.SetField("nom", "Rakoto")
	ctrl.SetField("email", "rakoto@example.mg")
	require.True(t, ctrl.Advance())

	err := ctrl.Submit(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
	assert.Equal(t, "cin is required", ctrl.Errors()["cin"])
}

func TestSubmitDeliversValues(t *testing.T) {
	var got map[string]any
	ctrl := twoStepController(SubmitterFunc(func(_ context.Context, values map[string]any) error {
		got = values
		return nil
	}))
	ctrl.SetField("nom", "Rakoto")
	ctrl.SetField("email", "rakoto@example.mg")
	require.True(t, ctrl.Advance())
	ctrl.SetField("cin", FileRef{Name: "cin.pdf", StorageKey: "docs/cin.pdf", SizeBytes: 512})

	require.NoError(t, ctrl.Submit(context.Background()))
	require.NotNil(t, got)
	assert.Equal(t, "Rakoto", got["nom"])
	assert.False(t, ctrl.Submitting())
}

func TestSubmitFailureSurfacesAsSubmissionError(t *testing.T) {
	ctrl := twoStepController(SubmitterFunc(func(context.Context, map[string]any) error {
		return errors.New("backend down")
	}))
	ctrl.SetField("nom", "Rakoto")
	ctrl.SetField("email", "rakoto@example.mg")
	require.True(t, ctrl.Advance())
	ctrl.SetField("cin", &FileRef{Name: "cin.pdf"})

	err := ctrl.Submit(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "SUBMISSION_FAILED"))
	assert.False(t, ctrl.Submitting())
}

func TestSubmitRefusedWhileInFlight(t *testing.T) {
	var ctrl *Controller
	var nested error
	ctrl = twoStepController(SubmitterFunc(func(ctx context.Context, _ map[string]any) error {
		nested = ctrl.Submit(ctx)
		return nil
	}))
	ctrl.SetField("nom", "Rakoto")
	ctrl.SetField("email", "rakoto@example.mg")
	require.True(t, ctrl.Advance())
	ctrl.SetField("cin", &FileRef{Name: "cin.pdf"})

	require.NoError(t, ctrl.Submit(context.Background()))
	require.Error(t, nested)
	assert.True(t, apperrors.IsCode(nested, "INVALID_STATE"))
}

func TestEmptinessRules(t *testing.T) {
	assert.True(t, isEmpty(nil))
	assert.True(t, isEmpty(""))
	assert.True(t, isEmpty((*FileRef)(nil)))
	assert.True(t, isEmpty(FileRef{}))
	assert.True(t, isEmpty(false))
	assert.False(t, isEmpty("x"))
	assert.False(t, isEmpty(true))
	assert.False(t, isEmpty(&FileRef{Name: "a"}))
	assert.False(t, isEmpty(0))
}
