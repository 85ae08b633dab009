package agent

import (
	"github.com/shopspring/decimal"

	"github.com/TEAM-BIRDIE/BeoTT/internal/models"
)

// LanguageModel is the text-completion collaborator. It is fallible and
// non-deterministic; every caller must be prepared for an error or for
// output that fails validation.
type LanguageModel interface {
	Complete(prompt string) (string, error)
}

// DataStore is the relational collaborator: read queries plus one mutating
// unit of work. The store is responsible for making Transfer atomic and for
// serializing concurrent debits of the same account.
type DataStore interface {
	GetMember(username string) (*models.Member, error)
	GetPINHash(username string) (string, error)
	ListContacts(memberID int64) ([]models.Contact, error)
	GetContact(memberID int64, name string) (*models.Contact, error)
	GetPrimaryAccount(memberID int64) (*models.Account, error)
	ListAccounts(memberID int64) ([]models.Account, error)
	GetExchangeRate(code string) (decimal.Decimal, error)
	RecentLedger(memberID int64, limit int) ([]models.LedgerEntry, error)
	Transfer(req models.TransferRequest) (decimal.Decimal, error)
}

// Searcher is the knowledge-base collaborator. Ranking quality is its
// problem, not ours.
type Searcher interface {
	SearchTerms(query string, limit int) ([]models.Term, error)
}

// History is the append-only cross-turn conversation log.
type History interface {
	Append(query, answer string) error
	Read() (string, error)
}
