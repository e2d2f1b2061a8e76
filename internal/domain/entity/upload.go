package entity

import "time"

// Status de um upload de NF-e.
const (
	UploadStatusPending   = "pending"
	UploadStatusProcessed = "processed"
	UploadStatusError     = "error"
)

// NFeUpload registra um XML de NF-e enviado por um usuário.
type NFeUpload struct {
	ID           string
	UserID       string
	Filename     string // nome original sanitizado
	StoredPath   string // caminho no armazenamento de blobs
	AccessKey    string // chave de acesso (44 dígitos) para deduplicação; pode estar vazia
	Period       string // trimestre derivado da emissão, ex: "Q1-2025"
	Status       string // pending, processed, error
	ErrorMessage string
	UploadedAt   time.Time
}
