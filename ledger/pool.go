package ledger

import "sync"

// Pools for commonly allocated objects to reduce GC pressure

var (
	// currencyIndexPool provides pooled maps for aggregation queries that
	// need currency -> slice-index lookups while preserving first-occurrence
	// order.
	currencyIndexPool = sync.Pool{
		New: func() any {
			return make(map[string]int, 4) // typical account holds 2-4 currencies
		},
	}
)

// getCurrencyIndex retrieves a pooled currency index map
func getCurrencyIndex() map[string]int {
	return currencyIndexPool.Get().(map[string]int)
}

// putCurrencyIndex clears and returns a currency index map to the pool
func putCurrencyIndex(m map[string]int) {
	for k := range m {
		delete(m, k)
	}
	currencyIndexPool.Put(m)
}
