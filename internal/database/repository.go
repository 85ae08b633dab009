package database

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/TEAM-BIRDIE/BeoTT/internal/models"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetMember(username string) (*models.Member, error) {
	var m models.Member
	err := r.db.QueryRow(
		`SELECT id, username, korean_name FROM members WHERE username = ?`, username,
	).Scan(&m.ID, &m.Username, &m.KoreanName)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *Repository) GetPINHash(username string) (string, error) {
	var hash string
	err := r.db.QueryRow(
		`SELECT pin_hash FROM members WHERE username = ?`, username,
	).Scan(&hash)
	if err != nil {
		return "", err
	}
	return hash, nil
}

func (r *Repository) ListContacts(memberID int64) ([]models.Contact, error) {
	rows, err := r.db.Query(
		`SELECT id, member_id, name, COALESCE(relationship, '') FROM contacts WHERE member_id = ? ORDER BY name ASC`,
		memberID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []models.Contact
	for rows.Next() {
		var c models.Contact
		if err := rows.Scan(&c.ID, &c.MemberID, &c.Name, &c.Relationship); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (r *Repository) GetContact(memberID int64, name string) (*models.Contact, error) {
	var c models.Contact
	err := r.db.QueryRow(
		`SELECT id, member_id, name, COALESCE(relationship, '') FROM contacts WHERE member_id = ? AND name = ?`,
		memberID, name,
	).Scan(&c.ID, &c.MemberID, &c.Name, &c.Relationship)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) GetPrimaryAccount(memberID int64) (*models.Account, error) {
	var a models.Account
	var balance string
	err := r.db.QueryRow(
		`SELECT id, member_id, bank_name, account_number, balance, is_primary
		 FROM accounts WHERE member_id = ? AND is_primary = 1`,
		memberID,
	).Scan(&a.ID, &a.MemberID, &a.BankName, &a.AccountNumber, &balance, &a.IsPrimary)
	if err != nil {
		return nil, err
	}
	a.Balance, err = decimal.NewFromString(balance)
	if err != nil {
		return nil, fmt.Errorf("corrupt balance for account %d: %w", a.ID, err)
	}
	return &a, nil
}

func (r *Repository) ListAccounts(memberID int64) ([]models.Account, error) {
	rows, err := r.db.Query(
		`SELECT id, member_id, bank_name, account_number, balance, is_primary
		 FROM accounts WHERE member_id = ? ORDER BY is_primary DESC, id ASC`,
		memberID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var a models.Account
		var balance string
		if err := rows.Scan(&a.ID, &a.MemberID, &a.BankName, &a.AccountNumber, &balance, &a.IsPrimary); err != nil {
			return nil, err
		}
		a.Balance, err = decimal.NewFromString(balance)
		if err != nil {
			return nil, fmt.Errorf("corrupt balance for account %d: %w", a.ID, err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// GetExchangeRate returns the most recent send rate for a currency. The base
// currency KRW is always 1 and never hits the database.
func (r *Repository) GetExchangeRate(code string) (decimal.Decimal, error) {
	if code == "KRW" {
		return decimal.NewFromInt(1), nil
	}
	var rate string
	err := r.db.QueryRow(
		`SELECT send_rate FROM exchange_rates WHERE currency_code = ? ORDER BY reference_date DESC, id DESC LIMIT 1`,
		code,
	).Scan(&rate)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.NewFromString(rate)
}

func (r *Repository) RecentLedger(memberID int64, limit int) ([]models.LedgerEntry, error) {
	rows, err := r.db.Query(
		`SELECT l.id, l.account_id, l.contact_id, l.transfer_id, l.amount, l.balance_after,
		        l.exchange_rate, l.target_amount, l.target_currency, l.description, l.created_at
		 FROM ledger l
		 JOIN accounts a ON l.account_id = a.id
		 WHERE a.member_id = ?
		 ORDER BY l.created_at DESC, l.id DESC
		 LIMIT ?`,
		memberID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.LedgerEntry
	for rows.Next() {
		var e models.LedgerEntry
		var amount, balanceAfter, rate, targetAmount string
		if err := rows.Scan(&e.ID, &e.AccountID, &e.ContactID, &e.TransferID, &amount, &balanceAfter,
			&rate, &targetAmount, &e.TargetCurrency, &e.Description, &e.CreatedAt); err != nil {
			return nil, err
		}
		if e.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, err
		}
		if e.BalanceAfter, err = decimal.NewFromString(balanceAfter); err != nil {
			return nil, err
		}
		if e.ExchangeRate, err = decimal.NewFromString(rate); err != nil {
			return nil, err
		}
		if e.TargetAmount, err = decimal.NewFromString(targetAmount); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *Repository) SearchTerms(query string, limit int) ([]models.Term, error) {
	pattern := "%" + query + "%"
	rows, err := r.db.Query(
		`SELECT word, definition FROM terms
		 WHERE word LIKE ? OR definition LIKE ?
		 ORDER BY CASE WHEN word LIKE ? THEN 0 ELSE 1 END, word ASC
		 LIMIT ?`,
		pattern, pattern, pattern, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var terms []models.Term
	for rows.Next() {
		var t models.Term
		if err := rows.Scan(&t.Word, &t.Definition); err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
	return terms, rows.Err()
}

// Transfer applies one authorized transfer as a single unit of work: it
// re-reads the balance, checks it covers the debit, updates the account and
// writes the ledger entry. Either everything commits or nothing does.
func (r *Repository) Transfer(req models.TransferRequest) (decimal.Decimal, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("begin transfer: %w", err)
	}
	defer tx.Rollback()

	var balanceStr string
	if err := tx.QueryRow(
		`SELECT balance FROM accounts WHERE id = ?`, req.AccountID,
	).Scan(&balanceStr); err != nil {
		return decimal.Decimal{}, fmt.Errorf("read balance: %w", err)
	}
	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("corrupt balance for account %d: %w", req.AccountID, err)
	}

	newBalance := balance.Sub(req.AmountBase)
	if newBalance.IsNegative() {
		return decimal.Decimal{}, models.ErrInsufficientBalance
	}

	if _, err := tx.Exec(
		`UPDATE accounts SET balance = ? WHERE id = ?`,
		newBalance.String(), req.AccountID,
	); err != nil {
		return decimal.Decimal{}, fmt.Errorf("update balance: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO ledger (account_id, contact_id, transfer_id, amount, balance_after,
		                     exchange_rate, target_amount, target_currency, description)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		req.AccountID, req.ContactID, req.TransferID,
		req.AmountBase.Neg().String(), newBalance.String(),
		req.ExchangeRate.String(), req.TargetAmount.String(), req.TargetCurrency,
		"송금",
	); err != nil {
		return decimal.Decimal{}, fmt.Errorf("insert ledger: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return decimal.Decimal{}, fmt.Errorf("commit transfer: %w", err)
	}
	return newBalance, nil
}
