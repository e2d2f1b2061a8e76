package entity

import "time"

// Report registra um relatório trimestral MAPA gerado com sucesso.
type Report struct {
	ID          string
	UserID      string
	Period      string // ex: "Q1-2025"
	TotalNFes   int    // quantidade de NF-es processadas na geração
	GeneratedAt time.Time
}
