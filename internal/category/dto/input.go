package dto

type CreateCategoryInput struct {
	Name string
	Slug string // Optional, derived from Name when empty
}
