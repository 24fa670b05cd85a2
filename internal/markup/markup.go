// Package markup разбирает статическую разметку страницы: карточки меню и отзывы-образцы.
package markup

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mmeshcher/golden-hive/internal/model"
)

//go:embed site.html
var siteHTML []byte

// Content — данные, извлечённые из разметки.
type Content struct {
	Menu  []model.MenuItem
	Seeds []model.Review
}

// HTML возвращает встроенную разметку сайта.
func HTML() []byte {
	return siteHTML
}

// Default разбирает встроенную разметку сайта.
func Default() (*Content, error) {
	return Parse(bytes.NewReader(siteHTML))
}

// Parse разбирает HTML-документ с карточками .menu-card и отзывами .review-card.static-review.
func Parse(r io.Reader) (*Content, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}

	c := &Content{}

	doc.Find(".menu-card").Each(func(i int, s *goquery.Selection) {
		id := attr(s, "data-id")
		if id == "" {
			id = fmt.Sprintf("item-%d", i+1)
		}
		c.Menu = append(c.Menu, model.MenuItem{
			ID:          id,
			Name:        attr(s, "data-name"),
			Category:    attr(s, "data-category"),
			Price:       attr(s, "data-price"),
			Description: attr(s, "data-description"),
			Image:       attr(s, "data-img"),
		})
	})

	doc.Find(".review-card.static-review").Each(func(_ int, s *goquery.Selection) {
		c.Seeds = append(c.Seeds, model.Review{
			Author: text(s.Find(".review-meta h4")),
			Date:   text(s.Find(".review-date")),
			Text:   text(s.Find(".review-text")),
			Rating: s.Find(".review-rating .star-display.filled").Length(),
		})
	})

	return c, nil
}

func attr(s *goquery.Selection, name string) string {
	v, _ := s.Attr(name)
	return strings.TrimSpace(v)
}

func text(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.First().Text()), " ")
}
