/*
Package ledger provides the authoritative in-memory account store.

The store handles:
- Account creation keyed by normalized (trimmed, lower-cased) email
- Snapshot lookups that never expose internal pointers
- Atomic two-account balance mutation for transfers

Usage:

	store := ledger.NewStore(metricsCollector)

	acct, err := store.CreateAccount(ctx, models.NewAccount{
	    FullName:       "Ada Obi",
	    Email:          "ada.obi@ext.com",
	    InitialBalance: decimal.NewFromInt(500),
	})

	err = store.ApplyTransfer(ctx, "ada.obi@ext.com", "tunde@ext.com", decimal.NewFromInt(25))

Locking:

Each account carries its own mutex. ApplyTransfer acquires the two account
locks in lexicographic email order, so two transfers moving money in
opposite directions between the same pair cannot deadlock. The account map
itself is guarded by a separate RWMutex and entries are never removed.

Error Handling:

- ErrAccountExists: the normalized email is already registered
- ErrAccountNotFound: lookup miss
- ErrInsufficientFunds: sender balance strictly below the amount; nothing is mutated
- ErrInvalidAmount: negative opening balance
*/
package ledger
