package domain

// TransactionRequest carries a proposed transaction into the engine.
type TransactionRequest struct {
	Type           TransactionType
	SenderNumber   string
	ReceiverNumber string
	AccountID      int
	Amount         int64
}

// Validate rejects requests that are malformed regardless of ledger
// state. Ledger-dependent preconditions are the engine's job.
func (r *TransactionRequest) Validate() error {
	if r.Amount < 0 {
		return ErrNegativeAmount
	}
	if r.ReceiverNumber != "" && r.ReceiverNumber != ATM && !ValidAccountNumber(r.ReceiverNumber) {
		return ErrInvalidAccountNumber
	}
	return nil
}

// Result is the engine's answer to a transaction request. Exactly one
// of Message and Err is populated. Cause carries the underlying error
// for callers that classify failures; it never reaches the wire.
type Result struct {
	Cause         error
	Message       string
	Err           string
	AccountID     int
	TransactionID int
}

// OK reports whether the request succeeded.
func (r Result) OK() bool {
	return r.Err == ""
}

// Fail populates the error side of the result.
func (r Result) Fail(cause error) Result {
	r.Cause = cause
	r.Err = cause.Error()
	return r
}

// FailWith populates the error side with a custom message while
// keeping cause for classification.
func (r Result) FailWith(cause error, message string) Result {
	r.Cause = cause
	r.Err = message
	return r
}
