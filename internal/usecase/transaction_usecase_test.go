package usecase_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/bcsbank/restbank/internal/domain"
	"github.com/bcsbank/restbank/internal/usecase"
	"github.com/bcsbank/restbank/internal/usecase/mocks"
)

type engineFixture struct {
	uc         *usecase.TransactionUseCase
	accRepo    *mocks.MockAccountRepository
	txRepo     *mocks.MockTransactionRepository
	outboxRepo *mocks.MockOutboxRepository
	txMgr      *mocks.MockTransactionManager
}

func newEngineFixture() *engineFixture {
	accRepo := mocks.NewMockAccountRepository()
	txRepo := mocks.NewMockTransactionRepository()
	outboxRepo := mocks.NewMockOutboxRepository()
	txMgr := mocks.NewMockTransactionManager()
	idGen := mocks.NewMockIDGenerator()

	return &engineFixture{
		uc:         usecase.NewTransactionUseCase(txMgr, accRepo, txRepo, outboxRepo, idGen),
		accRepo:    accRepo,
		txRepo:     txRepo,
		outboxRepo: outboxRepo,
		txMgr:      txMgr,
	}
}

func TestTransactionUseCase_Process_Deposit(t *testing.T) {
	f := newEngineFixture()
	f.accRepo.Seed(&domain.Account{ID: 1, Number: "EE1234", Balance: 0})

	result := f.uc.Process(context.Background(), domain.TransactionRequest{
		Type:      domain.TypeDeposit,
		AccountID: 1,
		Amount:    500,
	})

	if !result.OK() {
		t.Fatalf("unexpected failure: %s", result.Err)
	}
	if result.Message != "Successfully made deposit to account EE1234" {
		t.Errorf("wrong message: %q", result.Message)
	}
	if result.TransactionID != 1 {
		t.Errorf("expected transaction id 1, got %d", result.TransactionID)
	}

	records := f.txRepo.Records()
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.Type != domain.TypeDeposit || rec.Amount != 500 || rec.Balance != 500 {
		t.Errorf("wrong record: %+v", rec)
	}
	if rec.SenderNumber != domain.ATM || rec.ReceiverNumber != "EE1234" {
		t.Errorf("wrong counterparties: sender=%q receiver=%q", rec.SenderNumber, rec.ReceiverNumber)
	}

	acc, _ := f.accRepo.GetByID(context.Background(), 1)
	if acc.Balance != 500 {
		t.Errorf("balance = %d, want 500", acc.Balance)
	}
}

func TestTransactionUseCase_Process_WithdrawalRoundTrip(t *testing.T) {
	f := newEngineFixture()
	f.accRepo.Seed(&domain.Account{ID: 1, Number: "EE1234", Balance: 0})
	ctx := context.Background()

	deposit := f.uc.Process(ctx, domain.TransactionRequest{Type: domain.TypeDeposit, AccountID: 1, Amount: 700})
	if !deposit.OK() {
		t.Fatalf("deposit failed: %s", deposit.Err)
	}

	withdrawal := f.uc.Process(ctx, domain.TransactionRequest{Type: domain.TypeWithdrawal, AccountID: 1, Amount: 700})
	if !withdrawal.OK() {
		t.Fatalf("withdrawal failed: %s", withdrawal.Err)
	}
	if withdrawal.Message != "Successfully made withdrawal from account number EE1234" {
		t.Errorf("wrong message: %q", withdrawal.Message)
	}

	acc, _ := f.accRepo.GetByID(ctx, 1)
	if acc.Balance != 0 {
		t.Errorf("balance after round trip = %d, want 0", acc.Balance)
	}

	records := f.txRepo.Records()
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[1].SenderNumber != "EE1234" || records[1].ReceiverNumber != domain.ATM {
		t.Errorf("wrong withdrawal counterparties: %+v", records[1])
	}
}

func TestTransactionUseCase_Process_WithdrawalInsufficientFunds(t *testing.T) {
	f := newEngineFixture()
	f.accRepo.Seed(&domain.Account{ID: 1, Number: "EE1234", Balance: 0})
	ctx := context.Background()

	// 500 in, 600 rejected, 200 out.
	if r := f.uc.Process(ctx, domain.TransactionRequest{Type: domain.TypeDeposit, AccountID: 1, Amount: 500}); !r.OK() {
		t.Fatalf("deposit failed: %s", r.Err)
	}

	rejected := f.uc.Process(ctx, domain.TransactionRequest{Type: domain.TypeWithdrawal, AccountID: 1, Amount: 600})
	if rejected.OK() {
		t.Fatal("overdraft withdrawal should fail")
	}
	if rejected.Err != "not enough money to complete the withdrawal of 600" {
		t.Errorf("wrong error: %q", rejected.Err)
	}
	if !errors.Is(rejected.Cause, domain.ErrInsufficientFunds) {
		t.Errorf("wrong cause: %v", rejected.Cause)
	}

	if r := f.uc.Process(ctx, domain.TransactionRequest{Type: domain.TypeWithdrawal, AccountID: 1, Amount: 200}); !r.OK() {
		t.Fatalf("withdrawal after rejection failed: %s", r.Err)
	}

	acc, _ := f.accRepo.GetByID(ctx, 1)
	if acc.Balance != 300 {
		t.Errorf("balance = %d, want 300", acc.Balance)
	}

	// The rejected withdrawal must leave no trace: ids 1 and 2 only.
	records := f.txRepo.Records()
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ID != 1 || records[1].ID != 2 {
		t.Errorf("record ids not gap-free: %d, %d", records[0].ID, records[1].ID)
	}
}

func TestTransactionUseCase_Process_NewAccount(t *testing.T) {
	f := newEngineFixture()
	f.accRepo.Seed(&domain.Account{ID: 1, Number: "EE1234", Balance: 0})

	result := f.uc.Process(context.Background(), domain.TransactionRequest{
		Type:      domain.TypeNewAccount,
		AccountID: 1,
	})

	if !result.OK() {
		t.Fatalf("unexpected failure: %s", result.Err)
	}
	if result.Message != "Successfully added 'new account' transaction" {
		t.Errorf("wrong message: %q", result.Message)
	}

	records := f.txRepo.Records()
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.Amount != 0 || rec.Balance != 0 {
		t.Errorf("opening record must be zero: %+v", rec)
	}
	if rec.SenderNumber != "" || rec.ReceiverNumber != "" {
		t.Errorf("opening record must have no counterparties: %+v", rec)
	}
}

func TestTransactionUseCase_Process_SendMoney(t *testing.T) {
	f := newEngineFixture()
	f.accRepo.Seed(&domain.Account{ID: 1, Number: "EE1111", Balance: 1000})
	f.accRepo.Seed(&domain.Account{ID: 2, Number: "EE2222", Balance: 50})
	ctx := context.Background()

	result := f.uc.Process(ctx, domain.TransactionRequest{
		Type:           domain.TypeSendMoney,
		AccountID:      1,
		ReceiverNumber: "EE2222",
		Amount:         400,
	})

	if !result.OK() {
		t.Fatalf("unexpected failure: %s", result.Err)
	}
	if result.Message != "Successfully sent money to account number EE2222" {
		t.Errorf("wrong message: %q", result.Message)
	}
	// Result carries the sender leg's id.
	if result.TransactionID != 1 {
		t.Errorf("expected sender record id 1, got %d", result.TransactionID)
	}

	records := f.txRepo.Records()
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	senderRec, receiverRec := records[0], records[1]
	if senderRec.Type != domain.TypeSendMoney || senderRec.AccountID != 1 || senderRec.Balance != 600 {
		t.Errorf("wrong sender record: %+v", senderRec)
	}
	if receiverRec.Type != domain.TypeReceiveMoney || receiverRec.AccountID != 2 || receiverRec.Balance != 450 {
		t.Errorf("wrong receiver record: %+v", receiverRec)
	}
	if receiverRec.ID <= senderRec.ID {
		t.Errorf("receiver record id %d must come after sender id %d", receiverRec.ID, senderRec.ID)
	}
	if receiverRec.SenderNumber != "EE1111" || receiverRec.ReceiverNumber != "EE2222" {
		t.Errorf("wrong receiver counterparties: %+v", receiverRec)
	}

	sender, _ := f.accRepo.GetByID(ctx, 1)
	receiver, _ := f.accRepo.GetByID(ctx, 2)
	if sender.Balance != 600 || receiver.Balance != 450 {
		t.Errorf("balances = %d / %d, want 600 / 450", sender.Balance, receiver.Balance)
	}
}

func TestTransactionUseCase_Process_SendMoneyUnknownReceiver(t *testing.T) {
	f := newEngineFixture()
	f.accRepo.Seed(&domain.Account{ID: 1, Number: "EE1111", Balance: 1000})
	ctx := context.Background()

	result := f.uc.Process(ctx, domain.TransactionRequest{
		Type:           domain.TypeSendMoney,
		AccountID:      1,
		ReceiverNumber: "EE9876",
		Amount:         400,
	})

	// The debit stands even though no account in this ledger receives it.
	if !result.OK() {
		t.Fatalf("unexpected failure: %s", result.Err)
	}

	records := f.txRepo.Records()
	if len(records) != 1 {
		t.Fatalf("expected only the sender leg, got %d records", len(records))
	}
	if records[0].ReceiverNumber != "EE9876" {
		t.Errorf("sender leg must keep the unresolved receiver number: %+v", records[0])
	}

	sender, _ := f.accRepo.GetByID(ctx, 1)
	if sender.Balance != 600 {
		t.Errorf("sender balance = %d, want 600", sender.Balance)
	}
}

func TestTransactionUseCase_Process_SendMoneyInsufficientFunds(t *testing.T) {
	f := newEngineFixture()
	f.accRepo.Seed(&domain.Account{ID: 1, Number: "EE1111", Balance: 100})
	f.accRepo.Seed(&domain.Account{ID: 2, Number: "EE2222", Balance: 0})

	result := f.uc.Process(context.Background(), domain.TransactionRequest{
		Type:           domain.TypeSendMoney,
		AccountID:      1,
		ReceiverNumber: "EE2222",
		Amount:         500,
	})

	if result.OK() {
		t.Fatal("overdraft send should fail")
	}
	if result.Err != "not enough money to transfer 500" {
		t.Errorf("wrong error: %q", result.Err)
	}
	if len(f.txRepo.Records()) != 0 {
		t.Error("failed send must write no records")
	}
}

func TestTransactionUseCase_Process_SendMoneyToSelf(t *testing.T) {
	f := newEngineFixture()
	f.accRepo.Seed(&domain.Account{ID: 1, Number: "EE1111", Balance: 1000})
	ctx := context.Background()

	result := f.uc.Process(ctx, domain.TransactionRequest{
		Type:           domain.TypeSendMoney,
		AccountID:      1,
		ReceiverNumber: "EE1111",
		Amount:         400,
	})

	if !result.OK() {
		t.Fatalf("unexpected failure: %s", result.Err)
	}

	records := f.txRepo.Records()
	if len(records) != 2 {
		t.Fatalf("expected both legs, got %d records", len(records))
	}
	if records[0].Balance != 600 {
		t.Errorf("debit leg balance = %d, want 600", records[0].Balance)
	}
	if records[1].Balance != 1000 {
		t.Errorf("credit leg balance = %d, want 1000", records[1].Balance)
	}

	acc, _ := f.accRepo.GetByID(ctx, 1)
	if acc.Balance != 1000 {
		t.Errorf("self-send must leave the balance unchanged, got %d", acc.Balance)
	}
}

func TestTransactionUseCase_Process_ReceiveMoney(t *testing.T) {
	f := newEngineFixture()
	f.accRepo.Seed(&domain.Account{ID: 1, Number: "EE1234", Balance: 100})
	ctx := context.Background()

	result := f.uc.Process(ctx, domain.TransactionRequest{
		Type:           domain.TypeReceiveMoney,
		AccountID:      1,
		ReceiverNumber: "EE1234",
		Amount:         250,
	})

	if !result.OK() {
		t.Fatalf("unexpected failure: %s", result.Err)
	}
	if result.Message != "Transaction completed. EE1234 received 250" {
		t.Errorf("wrong message: %q", result.Message)
	}

	records := f.txRepo.Records()
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].SenderNumber != domain.ATM {
		t.Errorf("incoming transfer counterparty should be the ATM sentinel: %+v", records[0])
	}

	acc, _ := f.accRepo.GetByID(ctx, 1)
	if acc.Balance != 350 {
		t.Errorf("balance = %d, want 350", acc.Balance)
	}
}

func TestTransactionUseCase_Process_ReceiveMoneyUnknownReceiver(t *testing.T) {
	f := newEngineFixture()
	f.accRepo.Seed(&domain.Account{ID: 1, Number: "EE1234", Balance: 100})

	result := f.uc.Process(context.Background(), domain.TransactionRequest{
		Type:           domain.TypeReceiveMoney,
		AccountID:      1,
		ReceiverNumber: "EE9876",
		Amount:         250,
	})

	if result.OK() {
		t.Fatal("receive for an unknown number should fail")
	}
	if result.Err != "no such account in our bank: EE9876" {
		t.Errorf("wrong error: %q", result.Err)
	}
	if len(f.txRepo.Records()) != 0 {
		t.Error("failed receive must write no records")
	}
}

func TestTransactionUseCase_Process_Failures(t *testing.T) {
	tests := []struct {
		name    string
		seed    *domain.Account
		req     domain.TransactionRequest
		wantErr error
	}{
		{
			name:    "unknown account id",
			req:     domain.TransactionRequest{Type: domain.TypeDeposit, AccountID: 42, Amount: 100},
			wantErr: domain.ErrAccountNotFound,
		},
		{
			name:    "unknown transaction type",
			seed:    &domain.Account{ID: 1, Number: "EE1234"},
			req:     domain.TransactionRequest{Type: "x", AccountID: 1, Amount: 100},
			wantErr: domain.ErrUnknownTransactionType,
		},
		{
			name:    "negative amount",
			seed:    &domain.Account{ID: 1, Number: "EE1234"},
			req:     domain.TransactionRequest{Type: domain.TypeDeposit, AccountID: 1, Amount: -100},
			wantErr: domain.ErrNegativeAmount,
		},
		{
			name:    "malformed receiver number",
			seed:    &domain.Account{ID: 1, Number: "EE1234", Balance: 500},
			req:     domain.TransactionRequest{Type: domain.TypeSendMoney, AccountID: 1, ReceiverNumber: "nope", Amount: 100},
			wantErr: domain.ErrInvalidAccountNumber,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newEngineFixture()
			if tt.seed != nil {
				f.accRepo.Seed(tt.seed)
			}

			result := f.uc.Process(context.Background(), tt.req)

			if result.OK() {
				t.Fatal("expected failure")
			}
			if !errors.Is(result.Cause, tt.wantErr) {
				t.Errorf("expected cause %v, got %v", tt.wantErr, result.Cause)
			}
			if len(f.txRepo.Records()) != 0 {
				t.Error("failed request must write no records")
			}
		})
	}
}

func TestTransactionUseCase_Process_DepositOverflow(t *testing.T) {
	f := newEngineFixture()
	f.accRepo.Seed(&domain.Account{ID: 1, Number: "EE1234", Balance: math.MaxInt64})

	result := f.uc.Process(context.Background(), domain.TransactionRequest{
		Type:      domain.TypeDeposit,
		AccountID: 1,
		Amount:    1,
	})

	if result.OK() {
		t.Fatal("overflowing deposit should fail")
	}
	if !errors.Is(result.Cause, domain.ErrAmountOverflow) {
		t.Errorf("expected ErrAmountOverflow, got %v", result.Cause)
	}
	if len(f.txRepo.Records()) != 0 {
		t.Error("failed deposit must write no records")
	}
}

func TestTransactionUseCase_Process_EmitsOutboxEvents(t *testing.T) {
	f := newEngineFixture()
	f.accRepo.Seed(&domain.Account{ID: 1, Number: "EE1111", Balance: 1000})
	f.accRepo.Seed(&domain.Account{ID: 2, Number: "EE2222", Balance: 0})

	result := f.uc.Process(context.Background(), domain.TransactionRequest{
		Type:           domain.TypeSendMoney,
		AccountID:      1,
		ReceiverNumber: "EE2222",
		Amount:         100,
	})
	if !result.OK() {
		t.Fatalf("unexpected failure: %s", result.Err)
	}

	events := f.outboxRepo.Events()
	if len(events) != 2 {
		t.Fatalf("expected one event per record, got %d", len(events))
	}
	for _, event := range events {
		if event.EventType != domain.EventTypeTransactionCreated {
			t.Errorf("wrong event type: %q", event.EventType)
		}
	}
}

func TestTransactionUseCase_Process_RollsBackWhenAppendFails(t *testing.T) {
	f := newEngineFixture()
	f.accRepo.Seed(&domain.Account{ID: 1, Number: "EE1234", Balance: 500})

	appendErr := errors.New("append failed")
	f.txRepo.AppendFunc = func(ctx context.Context, tx usecase.Tx, record *domain.Transaction) error {
		return appendErr
	}

	result := f.uc.Process(context.Background(), domain.TransactionRequest{
		Type:      domain.TypeDeposit,
		AccountID: 1,
		Amount:    100,
	})

	if result.OK() {
		t.Fatal("expected failure")
	}
	if len(f.txMgr.Begun) != 1 {
		t.Fatalf("expected one transaction, got %d", len(f.txMgr.Begun))
	}
	if !f.txMgr.Begun[0].RolledBack {
		t.Error("transaction should have been rolled back")
	}
}
