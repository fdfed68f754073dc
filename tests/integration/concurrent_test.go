package integration

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/bcsbank/restbank/internal/domain"
	"github.com/bcsbank/restbank/internal/usecase"
	"github.com/bcsbank/restbank/tests/testutil"
)

func TestConcurrentWithdrawals_NoOverdraft(t *testing.T) {
	ctx := context.Background()
	bank := testutil.NewBank(t)

	// Balance covers exactly half the attempted withdrawals.
	account := bank.CreateAccountWithBalance(ctx, "Mari", "Maasikas", 500)

	const attempts = 100
	var (
		wg           sync.WaitGroup
		successCount atomic.Int32
	)

	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()

			result := bank.Engine.Process(ctx, domain.TransactionRequest{
				Type:      domain.TypeWithdrawal,
				AccountID: account.ID,
				Amount:    10,
			})
			if result.OK() {
				successCount.Add(1)
			}
		}()
	}
	wg.Wait()

	if successCount.Load() != 50 {
		t.Errorf("expected exactly 50 withdrawals to pass, got %d", successCount.Load())
	}

	got, err := bank.AccountUC.GetAccount(ctx, account.ID)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if got.Balance != 0 {
		t.Errorf("balance = %d, want 0: the ledger allowed an overdraft or lost an update", got.Balance)
	}

	report, err := bank.LedgerUC.CheckConsistency(ctx)
	if err != nil {
		t.Fatalf("consistency check failed: %v", err)
	}
	if !report.Consistent {
		t.Errorf("ledger inconsistent: %+v", report)
	}
}

func TestConcurrentTransfers_ConservationAcrossAccounts(t *testing.T) {
	ctx := context.Background()
	bank := testutil.NewBank(t)

	a := bank.CreateAccountWithBalance(ctx, "Mari", "Maasikas", 1000)
	b := bank.CreateAccountWithBalance(ctx, "Jaan", "Tamm", 1000)

	const transfers = 50
	var wg sync.WaitGroup
	wg.Add(transfers * 2)

	for i := 0; i < transfers; i++ {
		go func() {
			defer wg.Done()
			bank.Engine.Process(ctx, domain.TransactionRequest{
				Type:           domain.TypeSendMoney,
				AccountID:      a.ID,
				ReceiverNumber: b.Number,
				Amount:         10,
			})
		}()
		go func() {
			defer wg.Done()
			bank.Engine.Process(ctx, domain.TransactionRequest{
				Type:           domain.TypeSendMoney,
				AccountID:      b.ID,
				ReceiverNumber: a.Number,
				Amount:         10,
			})
		}()
	}
	wg.Wait()

	gotA, _ := bank.AccountUC.GetAccount(ctx, a.ID)
	gotB, _ := bank.AccountUC.GetAccount(ctx, b.ID)

	// Every transfer stays inside the bank, the total cannot move.
	if gotA.Balance+gotB.Balance != 2000 {
		t.Errorf("total = %d, want 2000", gotA.Balance+gotB.Balance)
	}

	report, err := bank.LedgerUC.CheckConsistency(ctx)
	if err != nil {
		t.Fatalf("consistency check failed: %v", err)
	}
	if !report.Consistent {
		t.Errorf("ledger inconsistent: %+v", report)
	}
}

func TestConcurrentAccountCreation_UniqueNumbers(t *testing.T) {
	ctx := context.Background()
	bank := testutil.NewBank(t)

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)

	numbers := make(chan string, n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			account, err := bank.AccountUC.CreateAccount(ctx, usecase.CreateAccountInput{
				FirstName: "Test",
				LastName:  "User",
			})
			if err != nil {
				t.Error(err)
				return
			}
			numbers <- account.Number
		}()
	}
	wg.Wait()
	close(numbers)

	seen := make(map[string]bool)
	for number := range numbers {
		if seen[number] {
			t.Errorf("duplicate account number %s", number)
		}
		seen[number] = true
	}
}
