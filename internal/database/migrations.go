package database

import (
	"database/sql"

	"golang.org/x/crypto/bcrypt"
)

func migrate(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS members (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		korean_name TEXT NOT NULL DEFAULT '',
		pin_hash TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	);

	CREATE TABLE IF NOT EXISTS accounts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		member_id INTEGER NOT NULL REFERENCES members(id),
		bank_name TEXT NOT NULL DEFAULT '',
		account_number TEXT NOT NULL UNIQUE,
		balance TEXT NOT NULL DEFAULT '0',
		is_primary INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	);

	CREATE TABLE IF NOT EXISTS contacts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		member_id INTEGER NOT NULL REFERENCES members(id),
		name TEXT NOT NULL,
		relationship TEXT,
		UNIQUE(member_id, name)
	);

	CREATE TABLE IF NOT EXISTS exchange_rates (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		currency_code TEXT NOT NULL,
		send_rate TEXT NOT NULL,
		reference_date TEXT NOT NULL DEFAULT (date('now'))
	);

	CREATE TABLE IF NOT EXISTS ledger (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		account_id INTEGER NOT NULL REFERENCES accounts(id),
		contact_id INTEGER NOT NULL REFERENCES contacts(id),
		transfer_id TEXT NOT NULL,
		amount TEXT NOT NULL,
		balance_after TEXT NOT NULL,
		exchange_rate TEXT NOT NULL,
		target_amount TEXT NOT NULL,
		target_currency TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	);

	CREATE TABLE IF NOT EXISTS terms (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		word TEXT NOT NULL UNIQUE,
		definition TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_accounts_member_id ON accounts(member_id);
	CREATE INDEX IF NOT EXISTS idx_contacts_member_id ON contacts(member_id);
	CREATE INDEX IF NOT EXISTS idx_ledger_account_id ON ledger(account_id);
	CREATE INDEX IF NOT EXISTS idx_ledger_created_at ON ledger(created_at);
	CREATE INDEX IF NOT EXISTS idx_rates_code_date ON exchange_rates(currency_code, reference_date);
	`

	if _, err := db.Exec(schema); err != nil {
		return err
	}

	return seed(db)
}

// seed inserts a demo member with a known PIN so the server is usable out of
// the box. Inserts are keyed on unique columns, so re-running is a no-op.
func seed(db *sql.DB) error {
	pinHash, err := bcrypt.GenerateFromPassword([]byte("1234"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if _, err := db.Exec(
		`INSERT OR IGNORE INTO members (username, korean_name, pin_hash) VALUES (?, ?, ?)`,
		"demo", "김하늘", string(pinHash),
	); err != nil {
		return err
	}

	var memberID int64
	if err := db.QueryRow(`SELECT id FROM members WHERE username = ?`, "demo").Scan(&memberID); err != nil {
		return err
	}

	if _, err := db.Exec(
		`INSERT OR IGNORE INTO accounts (member_id, bank_name, account_number, balance, is_primary)
		 VALUES (?, ?, ?, ?, 1)`,
		memberID, "비오티은행", "110-2345-6789", "1000000",
	); err != nil {
		return err
	}

	contacts := []struct{ name, relationship string }{
		{"Mother", "mom"},
		{"Father", "dad"},
		{"김철수", "friend"},
	}
	for _, c := range contacts {
		if _, err := db.Exec(
			`INSERT OR IGNORE INTO contacts (member_id, name, relationship) VALUES (?, ?, ?)`,
			memberID, c.name, c.relationship,
		); err != nil {
			return err
		}
	}

	var rateCount int
	if err := db.QueryRow(`SELECT COUNT(*) FROM exchange_rates`).Scan(&rateCount); err != nil {
		return err
	}
	if rateCount == 0 {
		rates := []struct{ code, rate string }{
			{"USD", "1350.50"},
			{"JPY", "9.12"},
			{"EUR", "1480.25"},
			{"VND", "0.055"},
		}
		for _, r := range rates {
			if _, err := db.Exec(
				`INSERT INTO exchange_rates (currency_code, send_rate) VALUES (?, ?)`,
				r.code, r.rate,
			); err != nil {
				return err
			}
		}
	}

	terms := []struct{ word, definition string }{
		{"인플레이션", "물가가 지속적으로 상승하여 화폐 가치가 하락하는 현상입니다."},
		{"마이너스통장", "약정 한도 내에서 잔액이 음수가 될 수 있는 한도대출 계좌입니다."},
		{"환율", "서로 다른 두 통화 사이의 교환 비율입니다."},
		{"LTV", "주택담보대출비율. 담보 가치 대비 대출 가능 금액의 비율입니다."},
	}
	for _, t := range terms {
		if _, err := db.Exec(
			`INSERT OR IGNORE INTO terms (word, definition) VALUES (?, ?)`,
			t.word, t.definition,
		); err != nil {
			return err
		}
	}

	return nil
}
