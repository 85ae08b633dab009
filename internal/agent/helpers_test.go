package agent

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/TEAM-BIRDIE/BeoTT/internal/models"
)

// stubLLM replays a scripted sequence of completions and records every
// prompt it was given.
type stubLLM struct {
	replies []stubReply
	prompts []string
}

type stubReply struct {
	text string
	err  error
}

func reply(text string) stubReply { return stubReply{text: text} }
func replyErr() stubReply         { return stubReply{err: errors.New("llm unavailable")} }

func (s *stubLLM) Complete(prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if len(s.replies) == 0 {
		return "", errors.New("stub llm: no scripted reply left")
	}
	r := s.replies[0]
	s.replies = s.replies[1:]
	return r.text, r.err
}

// fakeStore is an in-memory DataStore with one member, one primary account
// and a contact book.
type fakeStore struct {
	member      *models.Member
	pinHash     string
	contacts    []models.Contact
	account     *models.Account
	rates       map[string]decimal.Decimal
	ledger      []models.TransferRequest
	transferErr error
}

func newFakeStore(t *testing.T) *fakeStore {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("1234"), bcrypt.MinCost)
	require.NoError(t, err)

	return &fakeStore{
		member:  &models.Member{ID: 1, Username: "demo", KoreanName: "김하늘"},
		pinHash: string(hash),
		contacts: []models.Contact{
			{ID: 10, MemberID: 1, Name: "Mother", Relationship: "mom"},
			{ID: 11, MemberID: 1, Name: "김철수", Relationship: "friend"},
		},
		account: &models.Account{
			ID: 100, MemberID: 1, BankName: "테스트은행", AccountNumber: "110-000",
			Balance: decimal.NewFromInt(1000000), IsPrimary: true,
		},
		rates: map[string]decimal.Decimal{
			"USD": decimal.RequireFromString("1350.50"),
		},
	}
}

func (f *fakeStore) GetMember(username string) (*models.Member, error) {
	if username != f.member.Username {
		return nil, sql.ErrNoRows
	}
	return f.member, nil
}

func (f *fakeStore) GetPINHash(username string) (string, error) {
	if username != f.member.Username {
		return "", sql.ErrNoRows
	}
	return f.pinHash, nil
}

func (f *fakeStore) ListContacts(memberID int64) ([]models.Contact, error) {
	return f.contacts, nil
}

func (f *fakeStore) GetContact(memberID int64, name string) (*models.Contact, error) {
	for i := range f.contacts {
		if f.contacts[i].Name == name {
			return &f.contacts[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeStore) GetPrimaryAccount(memberID int64) (*models.Account, error) {
	copied := *f.account
	return &copied, nil
}

func (f *fakeStore) ListAccounts(memberID int64) ([]models.Account, error) {
	return []models.Account{*f.account}, nil
}

func (f *fakeStore) GetExchangeRate(code string) (decimal.Decimal, error) {
	if code == "KRW" {
		return decimal.NewFromInt(1), nil
	}
	if rate, ok := f.rates[code]; ok {
		return rate, nil
	}
	return decimal.Decimal{}, sql.ErrNoRows
}

func (f *fakeStore) RecentLedger(memberID int64, limit int) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	for _, req := range f.ledger {
		entries = append(entries, models.LedgerEntry{
			AccountID:      req.AccountID,
			ContactID:      req.ContactID,
			TransferID:     req.TransferID,
			Amount:         req.AmountBase.Neg(),
			ExchangeRate:   req.ExchangeRate,
			TargetAmount:   req.TargetAmount,
			TargetCurrency: req.TargetCurrency,
			Description:    "송금",
		})
	}
	return entries, nil
}

func (f *fakeStore) Transfer(req models.TransferRequest) (decimal.Decimal, error) {
	if f.transferErr != nil {
		return decimal.Decimal{}, f.transferErr
	}
	newBalance := f.account.Balance.Sub(req.AmountBase)
	if newBalance.IsNegative() {
		return decimal.Decimal{}, models.ErrInsufficientBalance
	}
	f.account.Balance = newBalance
	f.ledger = append(f.ledger, req)
	return newBalance, nil
}

type fakeSearcher struct {
	terms []models.Term
	err   error
}

func (f *fakeSearcher) SearchTerms(query string, limit int) ([]models.Term, error) {
	return f.terms, f.err
}

type fakeHistory struct {
	text    string
	entries []string
}

func (f *fakeHistory) Append(query, answer string) error {
	f.entries = append(f.entries, query+" | "+answer)
	return nil
}

func (f *fakeHistory) Read() (string, error) {
	return f.text, nil
}
