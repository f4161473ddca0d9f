// catalog — тонкие REST-клиенты CRUD-сервисов каталога (product, category,
// attribute, image). Схемы ресурсов принадлежат сервисам; шлюз только
// проксирует вызовы, прикладывая bearer-токен через общий транспорт.
package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sokol111/ecommerce-admin-gateway/internal/clients/rest"
	"github.com/sokol111/ecommerce-admin-gateway/internal/models"
)

// listQuery — сериализация параметров листинга в query string.
// Дефолты page=1/size=10 — как на страницах списков админки.
func listQuery(p models.ListParams) string {
	q := url.Values{}

	page := p.Page
	if page <= 0 {
		page = 1
	}
	size := p.Size
	if size <= 0 {
		size = 10
	}

	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))

	if p.Sort != "" {
		q.Set("sort", p.Sort)
	}
	if p.Order != "" {
		q.Set("order", p.Order)
	}
	if p.Enabled != nil {
		q.Set("enabled", strconv.FormatBool(*p.Enabled))
	}
	if p.CategoryID != "" {
		q.Set("categoryId", p.CategoryID)
	}

	return q.Encode()
}

// ProductsClient — клиент product-сервиса.
type ProductsClient struct {
	baseURL string
	httpc   *http.Client
}

func NewProducts(baseURL string, httpc *http.Client) *ProductsClient {
	return &ProductsClient{baseURL: baseURL, httpc: httpc}
}

func (c *ProductsClient) ByID(ctx context.Context, id string) (*models.Product, error) {
	const op = "clients/catalog/Products.ByID"

	var out models.Product
	if err := rest.DoJSON(ctx, c.httpc, http.MethodGet, c.baseURL+"/products/"+url.PathEscape(id), nil, &out, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

func (c *ProductsClient) List(ctx context.Context, p models.ListParams) (*models.ProductListResponse, error) {
	const op = "clients/catalog/Products.List"

	var out models.ProductListResponse
	if err := rest.DoJSON(ctx, c.httpc, http.MethodGet, c.baseURL+"/products?"+listQuery(p), nil, &out, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

func (c *ProductsClient) Create(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	const op = "clients/catalog/Products.Create"

	var out models.Product
	if err := rest.DoJSON(ctx, c.httpc, http.MethodPost, c.baseURL+"/products", req, &out, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

func (c *ProductsClient) Update(ctx context.Context, req models.UpdateProductRequest) (*models.Product, error) {
	const op = "clients/catalog/Products.Update"

	var out models.Product
	if err := rest.DoJSON(ctx, c.httpc, http.MethodPut, c.baseURL+"/products/"+url.PathEscape(req.ID), req, &out, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// CategoriesClient — клиент category-сервиса.
type CategoriesClient struct {
	baseURL string
	httpc   *http.Client
}

func NewCategories(baseURL string, httpc *http.Client) *CategoriesClient {
	return &CategoriesClient{baseURL: baseURL, httpc: httpc}
}

func (c *CategoriesClient) ByID(ctx context.Context, id string) (*models.Category, error) {
	const op = "clients/catalog/Categories.ByID"

	var out models.Category
	if err := rest.DoJSON(ctx, c.httpc, http.MethodGet, c.baseURL+"/categories/"+url.PathEscape(id), nil, &out, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

func (c *CategoriesClient) List(ctx context.Context, p models.ListParams) (*models.CategoryListResponse, error) {
	const op = "clients/catalog/Categories.List"

	var out models.CategoryListResponse
	if err := rest.DoJSON(ctx, c.httpc, http.MethodGet, c.baseURL+"/categories?"+listQuery(p), nil, &out, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

func (c *CategoriesClient) Create(ctx context.Context, req models.CreateCategoryRequest) (*models.Category, error) {
	const op = "clients/catalog/Categories.Create"

	var out models.Category
	if err := rest.DoJSON(ctx, c.httpc, http.MethodPost, c.baseURL+"/categories", req, &out, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

func (c *CategoriesClient) Update(ctx context.Context, req models.UpdateCategoryRequest) (*models.Category, error) {
	const op = "clients/catalog/Categories.Update"

	var out models.Category
	if err := rest.DoJSON(ctx, c.httpc, http.MethodPut, c.baseURL+"/categories/"+url.PathEscape(req.ID), req, &out, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// AttributesClient — клиент attribute-сервиса.
type AttributesClient struct {
	baseURL string
	httpc   *http.Client
}

func NewAttributes(baseURL string, httpc *http.Client) *AttributesClient {
	return &AttributesClient{baseURL: baseURL, httpc: httpc}
}

func (c *AttributesClient) ByID(ctx context.Context, id string) (*models.Attribute, error) {
	const op = "clients/catalog/Attributes.ByID"

	var out models.Attribute
	if err := rest.DoJSON(ctx, c.httpc, http.MethodGet, c.baseURL+"/attributes/"+url.PathEscape(id), nil, &out, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

func (c *AttributesClient) List(ctx context.Context, p models.ListParams) (*models.AttributeListResponse, error) {
	const op = "clients/catalog/Attributes.List"

	var out models.AttributeListResponse
	if err := rest.DoJSON(ctx, c.httpc, http.MethodGet, c.baseURL+"/attributes?"+listQuery(p), nil, &out, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

func (c *AttributesClient) Create(ctx context.Context, req models.CreateAttributeRequest) (*models.Attribute, error) {
	const op = "clients/catalog/Attributes.Create"

	var out models.Attribute
	if err := rest.DoJSON(ctx, c.httpc, http.MethodPost, c.baseURL+"/attributes", req, &out, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

func (c *AttributesClient) Update(ctx context.Context, req models.UpdateAttributeRequest) (*models.Attribute, error) {
	const op = "clients/catalog/Attributes.Update"

	var out models.Attribute
	if err := rest.DoJSON(ctx, c.httpc, http.MethodPut, c.baseURL+"/attributes/"+url.PathEscape(req.ID), req, &out, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// ImagesClient — клиент image-сервиса (pre-signed загрузка).
type ImagesClient struct {
	baseURL string
	httpc   *http.Client
}

func NewImages(baseURL string, httpc *http.Client) *ImagesClient {
	return &ImagesClient{baseURL: baseURL, httpc: httpc}
}

func (c *ImagesClient) Presign(ctx context.Context, req models.PresignRequest) (*models.PresignResponse, error) {
	const op = "clients/catalog/Images.Presign"

	var out models.PresignResponse
	if err := rest.DoJSON(ctx, c.httpc, http.MethodPost, c.baseURL+"/images/presign", req, &out, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

func (c *ImagesClient) Confirm(ctx context.Context, req models.ConfirmRequest) (*models.Image, error) {
	const op = "clients/catalog/Images.Confirm"

	var out models.Image
	if err := rest.DoJSON(ctx, c.httpc, http.MethodPost, c.baseURL+"/images/confirm", req, &out, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

func (c *ImagesClient) Promote(ctx context.Context, req models.PromoteRequest) (*models.PromoteResponse, error) {
	const op = "clients/catalog/Images.Promote"

	var out models.PromoteResponse
	if err := rest.DoJSON(ctx, c.httpc, http.MethodPost, c.baseURL+"/images/promote", req, &out, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

func (c *ImagesClient) DeliveryURL(ctx context.Context, id string, width, quality int) (*models.DeliveryURLResponse, error) {
	const op = "clients/catalog/Images.DeliveryURL"

	q := url.Values{}
	q.Set("w", strconv.Itoa(width))
	q.Set("quality", strconv.Itoa(quality))

	var out models.DeliveryURLResponse
	if err := rest.DoJSON(ctx, c.httpc, http.MethodGet, c.baseURL+"/images/"+url.PathEscape(id)+"/delivery-url?"+q.Encode(), nil, &out, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}
