/*
Package wallet is the single owner of wallet balance mutations.

The service exposes two layers of operations:
  - Credit and Debit, the bare balance primitives
  - CreditAndRecord, DebitAndRecord and CompensateDebit, which pair the
    balance change with its causing transaction record inside one
    storage transaction

Every orchestrator (withdrawals, webhook reconciliation, deposits)
uses the paired operations so that a balance can never change without
a matching ledger entry, and a ledger entry can never exist without its
balance change.

Usage:

	svc := wallet.NewService(repo, cache, metrics)

	// Create a new wallet
	w, err := svc.CreateWallet(ctx, userID, "NGN")

	// Pair a credit with its transaction record
	err = svc.CreditAndRecord(ctx, userID, amount, rec)

	// Refund a failed debit-type flow
	err = svc.CompensateDebit(ctx, wallet.CompensationParams{...})

Debit does not enforce sufficient funds; the withdrawal orchestrator
pre-checks the balance and the storage layer serializes concurrent
mutations through single-statement balance expressions.
*/
package wallet
