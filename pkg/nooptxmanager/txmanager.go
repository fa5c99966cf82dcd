package nooptxmanager

import "context"

// TransactionManager менеджер транзакций для хранилищ без поддержки транзакций (Notion)
// Выполняет fn напрямую: проверка слота перед записью в этом режиме остаётся
// оптимистичной и не защищена от гонки на стороне хранилища
type TransactionManager struct{}

// NewTransactionManager создает новый no-op менеджер транзакций
func NewTransactionManager() *TransactionManager {
	return &TransactionManager{}
}

// DoSerializable выполняет fn без транзакции
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
