package types

// RootSource supplies the authoritative trie roots of an in-memory block.
// Implementations are consulted, not owned, by the header.
type RootSource interface {
	StateRoot() Hash
	TxRoot() Hash
	ReceiptRoot() Hash
}

// WithRoots returns a header whose state, transaction and receipt roots are
// taken from src. The receiver is unchanged; a nil src returns h itself.
func (h *Header) WithRoots(src RootSource) *Header {
	if src == nil {
		return h
	}
	state, tx, receipt := src.StateRoot(), src.TxRoot(), src.ReceiptRoot()
	if state == h.stateRoot && tx == h.txRoot && receipt == h.receiptRoot {
		return h
	}
	cpy := h.clone()
	cpy.stateRoot, cpy.txRoot, cpy.receiptRoot = state, tx, receipt
	return cpy
}
