// Package model содержит доменные сущности сайта «Золотой Улей».
package model

import "time"

// Account представляет единственную учётную запись посетителя.
type Account struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
}

// Booking описывает заявку на бронирование, оставленную через форму.
type Booking struct {
	Package   string    `json:"package"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Date      string    `json:"date"`
	People    int       `json:"people"`
	CreatedAt time.Time `json:"createdAt"`
}

// BookingRequest содержит поля формы бронирования в том виде, в каком их ввёл пользователь.
type BookingRequest struct {
	Package string `json:"package"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Date    string `json:"date"`
	People  int    `json:"people"`
}

// Review описывает отзыв посетителя с оценкой от 1 до 5.
type Review struct {
	ID          string    `json:"id"`
	Author      string    `json:"author"`
	AuthorEmail string    `json:"authorEmail"`
	Text        string    `json:"text"`
	Date        string    `json:"date"`
	Rating      int       `json:"rating"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ReviewCard — отображаемая карточка отзыва в общем списке.
type ReviewCard struct {
	ID          string  `json:"id,omitempty"`
	Author      string  `json:"author"`
	Initials    string  `json:"initials"`
	AvatarColor string  `json:"avatarColor"`
	Date        string  `json:"date"`
	Rating      int     `json:"rating"`
	Stars       [5]bool `json:"stars"`
	Text        string  `json:"text"`
	Static      bool    `json:"static"`
	CanDelete   bool    `json:"canDelete"`
}

// MenuItem описывает позицию меню из разметки страницы.
type MenuItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Price       string `json:"price"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// Profile содержит данные для блока профиля и кнопки в навигации.
type Profile struct {
	LoggedIn   bool   `json:"loggedIn"`
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	ButtonText string `json:"buttonText"`
}
