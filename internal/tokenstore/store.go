// Package tokenstore реализует долговременное хранилище токенов сессии.
// Хранятся ровно два значения: access-токен и refresh-токен.
// Источником истины для сессии остаётся удалённый бэкенд, хранилище
// нужно только для восстановления токена между запусками процесса.
package tokenstore

import "context"

// Ключи, под которыми сохраняются токены.
const (
	AccessKey  = "auth_token"
	RefreshKey = "refresh_token"
)

// Store описывает интерфейс хранилища токенов.
// Load при отсутствии сохранённых значений возвращает пустые строки без ошибки.
// Clear идемпотентен.
type Store interface {
	SaveAccess(ctx context.Context, token string) error
	SaveRefresh(ctx context.Context, token string) error
	Load(ctx context.Context) (access, refresh string, err error)
	Clear(ctx context.Context) error
}
