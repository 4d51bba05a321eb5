// AngelaMos | 2026
// entity.go

package testimonial

import (
	"time"
)

type Testimonial struct {
	ID           int64     `db:"id"`
	Name         string    `db:"name"`
	Position     string    `db:"position"`
	Company      string    `db:"company"`
	Content      string    `db:"content"`
	Rating       int       `db:"rating"`
	DisplayOrder int       `db:"display_order"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
}

const (
	MinRating = 1
	MaxRating = 5
)

type Request struct {
	Name         string `form:"name"          label:"Ism"       validate:"required,max=100"`
	Position     string `form:"position"      label:"Lavozim"   validate:"omitempty,max=100"`
	Company      string `form:"company"       label:"Kompaniya" validate:"omitempty,max=150"`
	Content      string `form:"content"       label:"Fikr"      validate:"required,max=2000"`
	Rating       int    `form:"rating"        label:"Baho"      validate:"gte=1,lte=5"`
	DisplayOrder int    `form:"display_order" label:"Tartib"    validate:"gte=0"`
	IsActive     bool   `form:"is_active"`
}
