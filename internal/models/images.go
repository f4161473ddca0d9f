package models

// Модели image-сервиса: pre-signed загрузка и промоушен временных картинок.

type PresignRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
}

// PresignResponse — одноразовый URL для прямой загрузки файла в хранилище.
type PresignResponse struct {
	ImageID   string            `json:"imageId"`
	URL       string            `json:"url"`
	Headers   map[string]string `json:"headers,omitempty"`
	ExpiresAt string            `json:"expiresAt,omitempty"`
}

type ConfirmRequest struct {
	ImageID string `json:"imageId"`
}

type Image struct {
	ID         string `json:"id"`
	URL        string `json:"url,omitempty"`
	Status     string `json:"status,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
	ModifiedAt string `json:"modifiedAt,omitempty"`
}

// PromoteRequest переводит временные изображения в постоянные
// после сохранения сущности, которая на них ссылается.
type PromoteRequest struct {
	ImageIDs []string `json:"imageIds"`
}

type PromoteResponse struct {
	Promoted []string `json:"promoted"`
}

// DeliveryURLResponse — URL отдачи изображения с параметрами трансформации.
type DeliveryURLResponse struct {
	URL       string `json:"url"`
	ExpiresAt string `json:"expiresAt,omitempty"`
}
