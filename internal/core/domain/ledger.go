package domain

// LedgerSnapshot is the whole chart of accounts plus every transaction,
// read inside a single exclusive window.
type LedgerSnapshot struct {
	Accounts     []Account
	Transactions []Transaction
}

// AccountNames indexes account names by id.
func (s LedgerSnapshot) AccountNames() map[int64]string {
	names := make(map[int64]string, len(s.Accounts))
	for _, acc := range s.Accounts {
		names[acc.ID] = acc.Name
	}
	return names
}
