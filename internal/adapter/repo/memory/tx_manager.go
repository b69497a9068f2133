package memory

import "context"

// TxManager serializes mutating use cases the way the gorm transaction does,
// by holding a store-wide lock for the duration of the closure. There is no
// rollback; writes land as the closure makes them.
type TxManager struct {
	store *Store
}

func NewTxManager(store *Store) TxManager {
	return TxManager{store: store}
}

func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.store.txMu.Lock()
	defer t.store.txMu.Unlock()
	return fn(ctx)
}
