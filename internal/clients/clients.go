package clients

import (
	"fmt"
	"net/http"

	"github.com/sokol111/ecommerce-admin-gateway/internal/clients/authclient"
	"github.com/sokol111/ecommerce-admin-gateway/internal/clients/catalog"
	"github.com/sokol111/ecommerce-admin-gateway/internal/clients/transport"
	"github.com/sokol111/ecommerce-admin-gateway/internal/config"
)

// Clients агрегирует REST-клиенты всех апстрим-сервисов.
//
// CRUD-клиенты разделяют один http.Client с bearer-транспортом: токен берётся
// из Token Store запроса (контекст), 401 в серверном режиме гасит токены и
// уходит вызывающему. Auth-клиент ходит напрямую, без интерсептора.
type Clients struct {
	Auth       *authclient.Client
	Products   *catalog.ProductsClient
	Categories *catalog.CategoriesClient
	Attributes *catalog.AttributesClient
	Images     *catalog.ImagesClient
}

// New собирает клиенты по адресам из конфигурации.
func New(cfg config.Config) (*Clients, error) {
	const op = "internal/clients/New"

	for name, addr := range map[string]string{
		"auth":      cfg.Upstream.AuthURL,
		"product":   cfg.Upstream.ProductURL,
		"category":  cfg.Upstream.CategoryURL,
		"attribute": cfg.Upstream.AttributeURL,
		"image":     cfg.Upstream.ImageURL,
	} {
		if addr == "" {
			return nil, fmt.Errorf("%s: empty %s upstream url", op, name)
		}
	}

	timeout := cfg.Timeouts.Service

	authHTTP := &http.Client{Timeout: timeout}

	crudHTTP := &http.Client{
		Timeout:   timeout,
		Transport: &transport.Bearer{},
	}

	return &Clients{
		Auth:       authclient.New(cfg.Upstream.AuthURL, authHTTP),
		Products:   catalog.NewProducts(cfg.Upstream.ProductURL, crudHTTP),
		Categories: catalog.NewCategories(cfg.Upstream.CategoryURL, crudHTTP),
		Attributes: catalog.NewAttributes(cfg.Upstream.AttributeURL, crudHTTP),
		Images:     catalog.NewImages(cfg.Upstream.ImageURL, crudHTTP),
	}, nil
}
