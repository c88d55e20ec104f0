// Package notify отделяет пользовательские уведомления от транспортного слоя.
// API-клиент сообщает об успехе или неудаче мутирующих операций через
// интерфейс Notifier, а конкретное представление (лог, stdout, UI)
// выбирает вызывающая сторона.
package notify

import "log/slog"

// Notifier получает пользовательские уведомления об операциях.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Log выводит уведомления через slog.
type Log struct {
	log *slog.Logger
}

// NewLog создаёт Notifier поверх переданного логгера.
func NewLog(log *slog.Logger) *Log {
	return &Log{log: log}
}

func (l *Log) Success(msg string) {
	l.log.Info(msg)
}

func (l *Log) Error(msg string) {
	l.log.Error(msg)
}

// Nop игнорирует все уведомления. Используется в тестах.
type Nop struct{}

func (Nop) Success(string) {}

func (Nop) Error(string) {}
