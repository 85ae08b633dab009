package models

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInsufficientBalance is returned by the data store when a debit would
// push the account balance below zero.
var ErrInsufficientBalance = errors.New("insufficient balance")

type Member struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	KoreanName string `json:"korean_name"`
}

type Account struct {
	ID            int64           `json:"id"`
	MemberID      int64           `json:"member_id"`
	BankName      string          `json:"bank_name"`
	AccountNumber string          `json:"account_number"`
	Balance       decimal.Decimal `json:"balance"`
	IsPrimary     bool            `json:"is_primary"`
}

type Contact struct {
	ID           int64  `json:"id"`
	MemberID     int64  `json:"member_id"`
	Name         string `json:"name"`
	Relationship string `json:"relationship,omitempty"`
}

// LedgerEntry is immutable once written. Amount is signed: a transfer debit
// is stored as a negative KRW amount.
type LedgerEntry struct {
	ID             int64           `json:"id"`
	AccountID      int64           `json:"account_id"`
	ContactID      int64           `json:"contact_id"`
	TransferID     string          `json:"transfer_id"`
	Amount         decimal.Decimal `json:"amount"`
	BalanceAfter   decimal.Decimal `json:"balance_after"`
	ExchangeRate   decimal.Decimal `json:"exchange_rate"`
	TargetAmount   decimal.Decimal `json:"target_amount"`
	TargetCurrency string          `json:"target_currency"`
	Description    string          `json:"description"`
	CreatedAt      string          `json:"created_at"`
}

// TransferRequest carries everything the data store needs to apply one
// authorized transfer as a single unit of work.
type TransferRequest struct {
	AccountID      int64
	ContactID      int64
	TransferID     string
	AmountBase     decimal.Decimal // positive KRW amount to debit
	ExchangeRate   decimal.Decimal
	TargetAmount   decimal.Decimal
	TargetCurrency string
}

// Term is one row of the financial-term knowledge base.
type Term struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
}
