package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PageResponse metadatos de página del listado.
type PageResponse struct {
	Page        int  `json:"page"`
	PageSize    int  `json:"page_size"`
	TotalPages  int  `json:"total_pages"`
	TotalItems  int  `json:"total_items"`
	HasPrevious bool `json:"has_previous"`
	HasNext     bool `json:"has_next"`
}

// BackupResponse ruta del respaldo creado.
type BackupResponse struct {
	Path string `json:"path"`
}

// RestoreRequest archivo de respaldo a restaurar (ruta local del servidor).
type RestoreRequest struct {
	Path string `json:"path"`
}
