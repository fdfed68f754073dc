package usecase

import (
	"context"
	"sort"
)

// LedgerUseCase handles ledger-wide operations.
type LedgerUseCase struct {
	ledgerRepo LedgerRepository
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(ledgerRepo LedgerRepository) *LedgerUseCase {
	return &LedgerUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// ConsistencyReport summarizes a consistency check.
type ConsistencyReport struct {
	// Mismatched lists account ids whose balance does not equal the
	// balance on their latest record.
	Mismatched   []int
	Accounts     int
	Transactions int
	TotalBalance int64
	Consistent   bool
}

// CheckConsistency verifies that every account balance equals the
// post-application balance on its most recent record. Money enters and
// leaves through the ATM sentinel, so the ledger total is not expected
// to be zero; the record trail is the invariant.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) (*ConsistencyReport, error) {
	accounts, transactions, totalBalance, err := uc.ledgerRepo.Totals(ctx)
	if err != nil {
		return nil, err
	}

	balances, err := uc.ledgerRepo.Balances(ctx)
	if err != nil {
		return nil, err
	}

	latest, err := uc.ledgerRepo.LatestRecordBalances(ctx)
	if err != nil {
		return nil, err
	}

	var mismatched []int
	for id, balance := range balances {
		recorded, ok := latest[id]
		if !ok {
			// No record trail at all: only a zero balance is explainable.
			if balance != 0 {
				mismatched = append(mismatched, id)
			}
			continue
		}
		if recorded != balance {
			mismatched = append(mismatched, id)
		}
	}
	sort.Ints(mismatched)

	return &ConsistencyReport{
		Mismatched:   mismatched,
		Accounts:     accounts,
		Transactions: transactions,
		TotalBalance: totalBalance,
		Consistent:   len(mismatched) == 0,
	}, nil
}
