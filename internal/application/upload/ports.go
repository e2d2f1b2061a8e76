package upload

// FileStore porto de armazenamento dos XMLs originais. A implementação em
// disco local vive em infrastructure/storage.
type FileStore interface {
	// Save grava o arquivo no escopo do usuário e devolve o caminho
	// interno usado depois para releitura no processamento.
	Save(userID, filename string, data []byte) (storedPath string, err error)
	Read(storedPath string) ([]byte, error)
	Remove(storedPath string) error
}
