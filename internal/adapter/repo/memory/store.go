package memory

import (
	"sync"

	"mindverse/internal/app/ports"
	"mindverse/internal/domain/mind"
)

// Store backs every repository port with plain maps so a server can run
// without postgres. Worlds are held JSON-encoded, the same shape the gorm
// repo persists, so a Get always hands back an isolated copy and a failed
// tick can never corrupt the stored aggregate.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	worlds      map[string][]byte
	versions    map[string]int64
	credentials map[string]ports.OperatorCredentialRecord
	ledger      map[string][]mind.LedgerEntry
	reports     map[string][]mind.TickReport
}

func NewStore() *Store {
	return &Store{
		worlds:      make(map[string][]byte),
		versions:    make(map[string]int64),
		credentials: make(map[string]ports.OperatorCredentialRecord),
		ledger:      make(map[string][]mind.LedgerEntry),
		reports:     make(map[string][]mind.TickReport),
	}
}
