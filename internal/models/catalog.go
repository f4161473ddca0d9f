package models

// ListParams — единые параметры листинга CRUD-ресурсов каталога.
type ListParams struct {
	Page       int    `json:"page"`
	Size       int    `json:"size"`
	Sort       string `json:"sort,omitempty"`
	Order      string `json:"order,omitempty"`
	Enabled    *bool  `json:"enabled,omitempty"`
	CategoryID string `json:"categoryId,omitempty"`
}

// Product — товар каталога. Version — оптимистическая блокировка на стороне
// product-сервиса; бизнес-правила связей ресурсов шлюз не проверяет.
type Product struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Price      float64            `json:"price"`
	Quantity   int64              `json:"quantity"`
	CategoryID string             `json:"categoryId,omitempty"`
	Attributes []ProductAttribute `json:"attributes,omitempty"`
	ImageIDs   []string           `json:"imageIds,omitempty"`
	Enabled    bool               `json:"enabled"`
	Version    int64              `json:"version"`
	CreatedAt  string             `json:"createdAt,omitempty"`
	ModifiedAt string             `json:"modifiedAt,omitempty"`
}

type ProductAttribute struct {
	AttributeID string `json:"attributeId"`
	Value       string `json:"value"`
}

type ProductListResponse struct {
	Items []Product `json:"items"`
	Page  int       `json:"page"`
	Size  int       `json:"size"`
	Total int64     `json:"total"`
}

type CreateProductRequest struct {
	Name       string             `json:"name"`
	Price      float64            `json:"price"`
	Quantity   int64              `json:"quantity"`
	CategoryID string             `json:"categoryId,omitempty"`
	Attributes []ProductAttribute `json:"attributes,omitempty"`
	ImageIDs   []string           `json:"imageIds,omitempty"`
	Enabled    bool               `json:"enabled"`
}

type UpdateProductRequest struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Price      float64            `json:"price"`
	Quantity   int64              `json:"quantity"`
	CategoryID string             `json:"categoryId,omitempty"`
	Attributes []ProductAttribute `json:"attributes,omitempty"`
	ImageIDs   []string           `json:"imageIds,omitempty"`
	Enabled    bool               `json:"enabled"`
	Version    int64              `json:"version"`
}

// Category — категория каталога со списком привязанных атрибутов.
type Category struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	ParentID   string              `json:"parentId,omitempty"`
	Attributes []CategoryAttribute `json:"attributes,omitempty"`
	Enabled    bool                `json:"enabled"`
	Version    int64               `json:"version"`
	CreatedAt  string              `json:"createdAt,omitempty"`
	ModifiedAt string              `json:"modifiedAt,omitempty"`
}

type CategoryAttribute struct {
	AttributeID string `json:"attributeId"`
	Required    bool   `json:"required"`
}

type CategoryListResponse struct {
	Items []Category `json:"items"`
	Page  int        `json:"page"`
	Size  int        `json:"size"`
	Total int64      `json:"total"`
}

type CreateCategoryRequest struct {
	Name       string              `json:"name"`
	ParentID   string              `json:"parentId,omitempty"`
	Attributes []CategoryAttribute `json:"attributes,omitempty"`
	Enabled    bool                `json:"enabled"`
}

type UpdateCategoryRequest struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	ParentID   string              `json:"parentId,omitempty"`
	Attributes []CategoryAttribute `json:"attributes,omitempty"`
	Enabled    bool                `json:"enabled"`
	Version    int64               `json:"version"`
}

// Attribute — атрибут товара (тип + допустимые значения).
type Attribute struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	Options    []string `json:"options,omitempty"`
	Enabled    bool     `json:"enabled"`
	Version    int64    `json:"version"`
	CreatedAt  string   `json:"createdAt,omitempty"`
	ModifiedAt string   `json:"modifiedAt,omitempty"`
}

type AttributeListResponse struct {
	Items []Attribute `json:"items"`
	Page  int         `json:"page"`
	Size  int         `json:"size"`
	Total int64       `json:"total"`
}

type CreateAttributeRequest struct {
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Options []string `json:"options,omitempty"`
	Enabled bool     `json:"enabled"`
}

type UpdateAttributeRequest struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Options []string `json:"options,omitempty"`
	Enabled bool     `json:"enabled"`
	Version int64    `json:"version"`
}
