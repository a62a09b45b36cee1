package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned when the addressed row does not exist.
var ErrNotFound = errors.New("record not found")

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Page selects a 1-based page of results.
type Page struct {
	Page  int
	Limit int
}

// Normalize clamps the page to sane bounds.
func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}

func (p Page) offset() int {
	return (p.Page - 1) * p.Limit
}

// List is one page of results plus the total match count.
type List[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// paginate counts the matches of q and loads the requested page. Preloads are
// applied to the page query only.
func paginate[T any](q *gorm.DB, page Page, order string, preloads ...string) (List[T], error) {
	page = page.Normalize()
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return List[T]{}, err
	}
	find := q.Session(&gorm.Session{})
	for _, rel := range preloads {
		find = find.Preload(rel)
	}
	items := make([]T, 0, page.Limit)
	if err := find.Order(order).Offset(page.offset()).Limit(page.Limit).Find(&items).Error; err != nil {
		return List[T]{}, err
	}
	return List[T]{Items: items, Total: total, Page: page.Page, Limit: page.Limit}, nil
}

func likePattern(search string) string {
	return "%" + search + "%"
}
