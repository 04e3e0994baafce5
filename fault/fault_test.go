package fault

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransient(t *testing.T) {
	base := errors.New("rate limited")
	err := Transient(base)

	assert.True(t, IsTransient(err))
	assert.False(t, IsPermanent(err))
	assert.ErrorIs(t, err, base)
}

func TestPermanent(t *testing.T) {
	base := errors.New("invalid api key")
	err := Permanent(base)

	assert.True(t, IsPermanent(err))
	assert.False(t, IsTransient(err))
	assert.ErrorIs(t, err, base)
}

func TestNilPassthrough(t *testing.T) {
	assert.NoError(t, Transient(nil))
	assert.NoError(t, Permanent(nil))
}

func TestUnclassifiedIsNotTransient(t *testing.T) {
	// An error of unknown provenance must never be retried.
	err := errors.New("something unexpected")
	assert.False(t, IsTransient(err))
	assert.True(t, IsPermanent(err))
}

func TestNilIsNeither(t *testing.T) {
	assert.False(t, IsTransient(nil))
	assert.False(t, IsPermanent(nil))
}

func TestClassificationSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("node research: %w", fmt.Errorf("tool: %w", Transientf("upstream 503")))
	assert.True(t, IsTransient(err))
}

func TestErrorMessageCarriesClass(t *testing.T) {
	assert.Contains(t, Transientf("x").Error(), "transient")
	assert.Contains(t, Permanentf("x").Error(), "permanent")
}
