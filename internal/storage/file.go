package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File persiste cada chave como um arquivo JSON dentro de um diretório.
// Equivalente local do localStorage do navegador no app original.
type File struct {
	Dir string
}

func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &File{Dir: dir}, nil
}

// path traduz a chave para um nome de arquivo seguro
func (f *File) path(key string) string {
	safe := strings.NewReplacer(":", "_", "/", "_").Replace(key)
	return filepath.Join(f.Dir, safe+".json")
}

func (f *File) Load(_ context.Context, key string, dst any) (bool, error) {
	b, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	return true, json.Unmarshal(b, dst)
}

func (f *File) Save(_ context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	// escrita via arquivo temporário + rename pra não corromper em crash
	tmp := f.path(key) + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return os.Rename(tmp, f.path(key))
}
