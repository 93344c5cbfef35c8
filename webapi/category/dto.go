package category

import "github.com/amirasaad/fintrack/pkg/dto"

// CreateCategoryRequest represents the request body for creating a category.
type CreateCategoryRequest struct {
	Name  string  `json:"name" validate:"required,min=2,max=50"`
	Color *string `json:"color" validate:"omitempty,max=7,hex_color"`
	Icon  *string `json:"icon" validate:"omitempty,max=10"`
}

func (r CreateCategoryRequest) toDTO() *dto.CategoryCreate {
	return &dto.CategoryCreate{Name: r.Name, Color: r.Color, Icon: r.Icon}
}

// UpdateCategoryRequest is a sparse patch; omitted fields keep their value.
type UpdateCategoryRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=2,max=50"`
	Color *string `json:"color" validate:"omitempty,max=7,hex_color"`
	Icon  *string `json:"icon" validate:"omitempty,max=10"`
}

func (r UpdateCategoryRequest) IsEmpty() bool {
	return r.Name == nil && r.Color == nil && r.Icon == nil
}

func (r UpdateCategoryRequest) toPatch() *dto.CategoryUpdate {
	return &dto.CategoryUpdate{Name: r.Name, Color: r.Color, Icon: r.Icon}
}
