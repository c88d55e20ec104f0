package tokenstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File хранит токены в JSON-файле на диске. Файл создаётся с правами 0600,
// каталог — 0700. Это аналог localStorage браузера для CLI-окружения.
type File struct {
	mu   sync.Mutex
	path string
}

type fileTokens struct {
	Access  string `json:"auth_token,omitempty"`
	Refresh string `json:"refresh_token,omitempty"`
}

// NewFile создаёт файловое хранилище токенов по указанному пути.
func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) SaveAccess(_ context.Context, token string) error {
	const op = "tokenstore.File.SaveAccess"
	f.mu.Lock()
	defer f.mu.Unlock()

	tokens, err := f.read()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	tokens.Access = token
	if err := f.write(tokens); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (f *File) SaveRefresh(_ context.Context, token string) error {
	const op = "tokenstore.File.SaveRefresh"
	f.mu.Lock()
	defer f.mu.Unlock()

	tokens, err := f.read()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	tokens.Refresh = token
	if err := f.write(tokens); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (f *File) Load(_ context.Context) (string, string, error) {
	const op = "tokenstore.File.Load"
	f.mu.Lock()
	defer f.mu.Unlock()

	tokens, err := f.read()
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}
	return tokens.Access, tokens.Refresh, nil
}

func (f *File) Clear(_ context.Context) error {
	const op = "tokenstore.File.Clear"
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (f *File) read() (fileTokens, error) {
	var tokens fileTokens
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return tokens, nil
	}
	if err != nil {
		return tokens, err
	}
	if err := json.Unmarshal(data, &tokens); err != nil {
		return tokens, err
	}
	return tokens, nil
}

func (f *File) write(tokens fileTokens) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(tokens)
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0o600)
}
