package inventory

// TransferList is a named set of quantities for ad-hoc bulk moves.
type TransferList struct {
	Name    string
	entries map[MaterialKey]Amount
	order   []MaterialKey
}

// NewTransferList creates an empty list
func NewTransferList(name string) *TransferList {
	return &TransferList{
		Name:    name,
		entries: make(map[MaterialKey]Amount),
	}
}

// Add accumulates an amount for key, keeping first-seen order.
func (l *TransferList) Add(key MaterialKey, amount Amount) {
	if _, ok := l.entries[key]; !ok {
		l.order = append(l.order, key)
	}
	l.entries[key] += amount
}

// Amount returns the declared amount for key, zero if absent.
func (l *TransferList) Amount(key MaterialKey) Amount {
	return l.entries[key]
}

// Keys returns the keys in declaration order.
func (l *TransferList) Keys() []MaterialKey {
	out := make([]MaterialKey, len(l.order))
	copy(out, l.order)
	return out
}

// Len returns the number of distinct keys.
func (l *TransferList) Len() int {
	return len(l.order)
}
