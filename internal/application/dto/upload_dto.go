package dto

import "time"

// UploadResponse saída de um XML de NF-e enviado.
type UploadResponse struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	AccessKey    string    `json:"access_key,omitempty"`
	Period       string    `json:"period"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// UpdateUploadPeriodRequest corrige o trimestre de um envio.
type UpdateUploadPeriodRequest struct {
	Period string `json:"period" validate:"required"`
}
