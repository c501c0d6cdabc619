package piv

import "fmt"

// TxnBegin acquires an exclusive card transaction. Nesting is
// forbidden: calling TxnBegin while already in a transaction panics.
func TxnBegin(t *Token) error {
	if t.inTransaction {
		panic(fmt.Sprintf("piv: TxnBegin reentry on token %q", t.ReaderName))
	}
	if err := t.card.BeginTransaction(); err != nil {
		return newErr("txn_begin", KindIO, err)
	}
	t.inTransaction = true
	return nil
}

// TxnEnd releases the transaction acquired by TxnBegin, passing the
// reset-card flag if the token's internal reset bit is set (by
// AuthAdmin, VerifyPIN, or ChangePIN) and clearing it afterward.
func TxnEnd(t *Token) error {
	if !t.inTransaction {
		panic(fmt.Sprintf("piv: TxnEnd on token %q not in transaction", t.ReaderName))
	}
	reset := t.reset
	err := t.card.EndTransaction(reset)
	t.inTransaction = false
	t.reset = false
	if err != nil {
		return newErr("txn_end", KindIO, err)
	}
	return nil
}
