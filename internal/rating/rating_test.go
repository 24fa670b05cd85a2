package rating

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmeshcher/golden-hive/internal/model"
)

func TestNewInput_Defaults(t *testing.T) {
	in := NewInput()

	assert.Equal(t, 5, in.Selected())
	assert.Equal(t, "Отлично!", in.Label())
	assert.Equal(t, [Max]bool{true, true, true, true, true}, in.Stars())
}

func TestSetRating(t *testing.T) {
	in := NewInput()

	require.NoError(t, in.SetRating(3))

	assert.Equal(t, 3, in.Selected())
	assert.Equal(t, "Нормально", in.Label())
	assert.Equal(t, [Max]bool{true, true, true, false, false}, in.Stars())
}

func TestSetRating_OutOfRange(t *testing.T) {
	in := NewInput()

	for _, r := range []int{0, 6, -1} {
		err := in.SetRating(r)
		assert.True(t, errors.Is(err, model.ErrValidation), "rating %d", r)
	}
	assert.Equal(t, 5, in.Selected())
}

func TestPreviewAndLeave(t *testing.T) {
	in := NewInput()
	require.NoError(t, in.SetRating(2))

	require.NoError(t, in.PreviewRating(4))
	assert.Equal(t, 2, in.Selected())
	assert.Equal(t, 4, in.Displayed())
	assert.Equal(t, "Хорошо", in.Label())

	in.Leave()
	assert.Equal(t, 2, in.Displayed())
	assert.Equal(t, "Так себе", in.Label())
}

func TestHandleKey_Navigation(t *testing.T) {
	in := NewInput()
	in.Focus(0)

	assert.True(t, in.HandleKey(KeyArrowLeft))
	assert.Equal(t, 0, in.Focused(), "focus must not wrap around to the last star")

	in.HandleKey(KeyArrowRight)
	in.HandleKey(KeyArrowRight)
	assert.Equal(t, 2, in.Focused())

	assert.True(t, in.HandleKey(KeySpace))
	assert.Equal(t, 3, in.Selected())

	for i := 0; i < 10; i++ {
		in.HandleKey(KeyArrowRight)
	}
	assert.Equal(t, 4, in.Focused())

	assert.True(t, in.HandleKey(KeyEnter))
	assert.Equal(t, 5, in.Selected())

	assert.False(t, in.HandleKey("Tab"))
}

func TestReset(t *testing.T) {
	in := NewInput()
	require.NoError(t, in.SetRating(1))
	in.Reset()

	assert.Equal(t, Default, in.Selected())
	assert.Equal(t, Default, in.Displayed())
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "", Label(0))
	assert.Equal(t, "Плохо", Label(1))
	assert.Equal(t, "", Label(6))
}
