// Package menu реализует фильтр меню по категориям.
package menu

import (
	"time"

	"github.com/mmeshcher/golden-hive/internal/model"
)

// All — категория, при выборе которой показываются все позиции.
const All = "all"

// RevealStep — шаг задержки появления карточек; задержки повторяются группами по четыре.
const RevealStep = 50 * time.Millisecond

// Card — позиция меню с состоянием отображения.
type Card struct {
	model.MenuItem
	Hidden      bool          `json:"hidden"`
	RevealDelay time.Duration `json:"revealDelay"`
}

// Filter хранит список позиций и активную вкладку.
type Filter struct {
	items  []model.MenuItem
	active string
	cards  []Card
}

// NewFilter создаёт фильтр, в котором выбрана вкладка «все».
func NewFilter(items []model.MenuItem) *Filter {
	f := &Filter{items: items}
	f.SelectCategory(All)
	return f
}

// SelectCategory делает вкладку активной и показывает позиции её категории.
// Для несуществующей категории не показывается ни одной позиции.
func (f *Filter) SelectCategory(category string) []Card {
	f.active = category
	f.cards = make([]Card, len(f.items))

	for i, item := range f.items {
		match := category == All || item.Category == category
		card := Card{MenuItem: item, Hidden: !match}
		if match {
			card.RevealDelay = time.Duration(i%4) * RevealStep
		}
		f.cards[i] = card
	}

	return f.Visible()
}

// Active возвращает активную категорию.
func (f *Filter) Active() string {
	return f.active
}

// Cards возвращает все карточки вместе со скрытыми.
func (f *Filter) Cards() []Card {
	return append([]Card(nil), f.cards...)
}

// Visible возвращает только показанные карточки.
func (f *Filter) Visible() []Card {
	visible := make([]Card, 0, len(f.cards))
	for _, c := range f.cards {
		if !c.Hidden {
			visible = append(visible, c)
		}
	}
	return visible
}

// Categories возвращает вкладки: «все» и категории позиций в порядке первого появления.
func (f *Filter) Categories() []string {
	seen := map[string]bool{All: true}
	categories := []string{All}
	for _, item := range f.items {
		if !seen[item.Category] {
			seen[item.Category] = true
			categories = append(categories, item.Category)
		}
	}
	return categories
}

// Item ищет позицию по идентификатору.
func (f *Filter) Item(id string) (model.MenuItem, bool) {
	for _, item := range f.items {
		if item.ID == id {
			return item, true
		}
	}
	return model.MenuItem{}, false
}
