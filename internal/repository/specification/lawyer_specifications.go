package specification

import (
	"strings"

	"gorm.io/gorm"
)

type ByLawyerID struct {
	ID int64
}

func (s ByLawyerID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

// CountyLike is a case-insensitive substring match on county.
type CountyLike struct {
	County string
}

func (s CountyLike) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(county) LIKE ?", likePattern(s.County))
}

// StateLike is a case-insensitive substring match on state.
type StateLike struct {
	State string
}

func (s StateLike) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(state) LIKE ?", likePattern(s.State))
}

// CountyOrCityLike matches a place that may be either a county or a city.
type CountyOrCityLike struct {
	Place string
}

func (s CountyOrCityLike) Apply(db *gorm.DB) *gorm.DB {
	p := likePattern(s.Place)
	return db.Where("(LOWER(county) LIKE ? OR LOWER(city) LIKE ?)", p, p)
}

func likePattern(v string) string {
	return "%" + strings.ToLower(strings.TrimSpace(v)) + "%"
}
