package core

import "context"

// ManualStore is the read contract the chat session depends on.
type ManualStore interface {
	GetManual(ctx context.Context, equipmentID int64) (string, error)
}

type ManualsRepository interface {
	ManualStore
	ListManuals(ctx context.Context) ([]Equipment, error)
	FindByName(ctx context.Context, name string) (Equipment, error)
	AddManual(ctx context.Context, name, content string) (Equipment, error)
}
