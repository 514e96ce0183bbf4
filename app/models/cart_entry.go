package models

// CartEntry is a pending selection: a catalog item reference and how many.
// ItemID is not checked against the catalog; entries whose item no longer
// exists are skipped when the cart is priced.
type CartEntry struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// CartLine is a cart entry joined with its catalog item.
type CartLine struct {
	Item      MenuItem `json:"item"`
	Quantity  int      `json:"quantity"`
	LineTotal float64  `json:"lineTotal"`
}

// CloneEntries returns a deep copy of entries, never nil.
func CloneEntries(entries []CartEntry) []CartEntry {
	out := make([]CartEntry, len(entries))
	copy(out, entries)
	return out
}
