// Package storage arquiva os XMLs originais em disco local, particionados por
// usuário. O arquivo original é a fonte de verdade do reprocessamento: o motor
// sempre relê o XML arquivado em vez de confiar em qualquer extração anterior.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore implementa os portos FileStore (upload) e FileReader (report)
// sobre um diretório base.
type LocalStore struct {
	baseDir string
}

// NewLocalStore cria o armazenamento e garante o diretório base.
func NewLocalStore(baseDir string) (*LocalStore, error) {
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("resolver diretório de uploads: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("criar diretório de uploads: %w", err)
	}
	return &LocalStore{baseDir: abs}, nil
}

// Save grava o arquivo em <base>/<userID>/<uuid>_<filename> e devolve o
// caminho relativo ao diretório base. O prefixo aleatório evita colisão entre
// uploads com o mesmo nome.
func (s *LocalStore) Save(userID, filename string, data []byte) (string, error) {
	userDir := filepath.Join(s.baseDir, userID)
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		return "", fmt.Errorf("criar diretório do usuário: %w", err)
	}
	stored := filepath.Join(userID, uuid.New().String()+"_"+filepath.Base(filename))
	if err := os.WriteFile(filepath.Join(s.baseDir, stored), data, 0o644); err != nil {
		return "", fmt.Errorf("gravar arquivo: %w", err)
	}
	return stored, nil
}

// Read relê um arquivo pelo caminho devolvido por Save.
func (s *LocalStore) Read(storedPath string) ([]byte, error) {
	full, err := s.resolve(storedPath)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("ler arquivo: %w", err)
	}
	return data, nil
}

// Remove apaga um arquivo arquivado. Arquivo já ausente não é erro.
func (s *LocalStore) Remove(storedPath string) error {
	full, err := s.resolve(storedPath)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remover arquivo: %w", err)
	}
	return nil
}

// resolve junta o caminho interno ao diretório base e rejeita qualquer
// tentativa de escapar dele ("../", caminho absoluto).
func (s *LocalStore) resolve(storedPath string) (string, error) {
	full := filepath.Join(s.baseDir, storedPath)
	if full != s.baseDir && !strings.HasPrefix(full, s.baseDir+string(filepath.Separator)) {
		return "", fmt.Errorf("caminho fora do diretório de uploads: %q", storedPath)
	}
	return full, nil
}
