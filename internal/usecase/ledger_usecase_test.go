package usecase_test

import (
	"context"
	"testing"

	"github.com/bcsbank/restbank/internal/usecase"
	"github.com/bcsbank/restbank/internal/usecase/mocks"
)

func TestLedgerUseCase_CheckConsistency(t *testing.T) {
	tests := []struct {
		name           string
		balances       map[int]int64
		latest         map[int]int64
		wantConsistent bool
		wantMismatched []int
	}{
		{
			name:           "balances match record trail",
			balances:       map[int]int64{1: 500, 2: 0},
			latest:         map[int]int64{1: 500, 2: 0},
			wantConsistent: true,
		},
		{
			name:           "balance drifted from trail",
			balances:       map[int]int64{1: 500, 2: 300},
			latest:         map[int]int64{1: 500, 2: 200},
			wantConsistent: false,
			wantMismatched: []int{2},
		},
		{
			name:           "no records and zero balance is fine",
			balances:       map[int]int64{1: 0},
			latest:         map[int]int64{},
			wantConsistent: true,
		},
		{
			name:           "no records but nonzero balance",
			balances:       map[int]int64{1: 100},
			latest:         map[int]int64{},
			wantConsistent: false,
			wantMismatched: []int{1},
		},
		{
			name:           "empty ledger",
			balances:       map[int]int64{},
			latest:         map[int]int64{},
			wantConsistent: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledgerRepo := mocks.NewMockLedgerRepository()
			ledgerRepo.BalancesFunc = func(ctx context.Context) (map[int]int64, error) {
				return tt.balances, nil
			}
			ledgerRepo.LatestRecordBalancesFunc = func(ctx context.Context) (map[int]int64, error) {
				return tt.latest, nil
			}

			uc := usecase.NewLedgerUseCase(ledgerRepo)
			report, err := uc.CheckConsistency(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if report.Consistent != tt.wantConsistent {
				t.Errorf("Consistent = %v, want %v", report.Consistent, tt.wantConsistent)
			}
			if len(report.Mismatched) != len(tt.wantMismatched) {
				t.Fatalf("Mismatched = %v, want %v", report.Mismatched, tt.wantMismatched)
			}
			for i, id := range tt.wantMismatched {
				if report.Mismatched[i] != id {
					t.Errorf("Mismatched = %v, want %v", report.Mismatched, tt.wantMismatched)
				}
			}
		})
	}
}
