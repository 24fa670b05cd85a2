// Package rating реализует выбор оценки звёздами от 1 до 5.
package rating

import (
	"fmt"

	"github.com/mmeshcher/golden-hive/internal/model"
)

const (
	// Min и Max задают допустимый диапазон оценки.
	Min = 1
	Max = 5
	// Default — оценка, выбранная при открытии формы отзыва.
	Default = Max
)

// Клавиши управления с клавиатуры.
const (
	KeyEnter      = "Enter"
	KeySpace      = " "
	KeyArrowRight = "ArrowRight"
	KeyArrowLeft  = "ArrowLeft"
)

var labels = [Max + 1]string{"", "Плохо", "Так себе", "Нормально", "Хорошо", "Отлично!"}

// Label возвращает подпись к оценке или пустую строку для значения вне диапазона.
func Label(r int) string {
	if r < Min || r > Max {
		return ""
	}
	return labels[r]
}

// Input хранит выбранную оценку, отображаемую оценку и звезду в фокусе.
type Input struct {
	selected  int
	displayed int
	focused   int
}

// NewInput создаёт поле оценки со значением по умолчанию.
func NewInput() *Input {
	in := &Input{}
	in.Reset()
	return in
}

// Reset возвращает оценку по умолчанию.
func (in *Input) Reset() {
	in.selected = Default
	in.displayed = Default
	in.focused = Default - 1
}

// SetRating фиксирует оценку.
func (in *Input) SetRating(r int) error {
	if err := checkRange(r); err != nil {
		return err
	}
	in.selected = r
	in.displayed = r
	return nil
}

// PreviewRating показывает оценку при наведении, не меняя выбранную.
func (in *Input) PreviewRating(r int) error {
	if err := checkRange(r); err != nil {
		return err
	}
	in.displayed = r
	return nil
}

// Leave возвращает отображение к выбранной оценке, когда курсор покидает звёзды.
func (in *Input) Leave() {
	in.displayed = in.selected
}

// Focus переводит фокус на звезду с индексом idx, ограничивая его диапазоном [0, 4].
func (in *Input) Focus(idx int) {
	in.focused = clamp(idx, 0, Max-1)
}

// HandleKey обрабатывает нажатие клавиши на звезде в фокусе и сообщает, была ли клавиша обработана.
func (in *Input) HandleKey(key string) bool {
	switch key {
	case KeyEnter, KeySpace:
		in.selected = in.focused + 1
		in.displayed = in.selected
	case KeyArrowRight:
		in.Focus(in.focused + 1)
	case KeyArrowLeft:
		in.Focus(in.focused - 1)
	default:
		return false
	}
	return true
}

// Selected возвращает выбранную оценку.
func (in *Input) Selected() int {
	return in.selected
}

// Displayed возвращает оценку, которая сейчас отображается.
func (in *Input) Displayed() int {
	return in.displayed
}

// Focused возвращает индекс звезды в фокусе.
func (in *Input) Focused() int {
	return in.focused
}

// Stars возвращает заливку звёзд: звезда i закрашена, если i < отображаемой оценки.
func (in *Input) Stars() [Max]bool {
	return Fill(in.displayed)
}

// Label возвращает подпись к отображаемой оценке.
func (in *Input) Label() string {
	return Label(in.displayed)
}

// Fill строит заливку из пяти звёзд для оценки r.
func Fill(r int) [Max]bool {
	var stars [Max]bool
	for i := range stars {
		stars[i] = i < r
	}
	return stars
}

func checkRange(r int) error {
	if r < Min || r > Max {
		return model.NewValidationError(fmt.Sprintf("оценка должна быть от %d до %d", Min, Max))
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
