package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Stage is the single discriminator of an in-flight transfer. Exactly one
// stage at a time by construction; the flat flag trio of the old design
// (missing_field / awaiting_confirm / awaiting_password) cannot be encoded
// inconsistently here.
type Stage string

const (
	StageNone       Stage = ""
	StageNeedTarget Stage = "need_target"
	StageNeedAmount Stage = "need_amount"
	StageConfirm    Stage = "confirm"
	StagePIN        Stage = "pin"
)

// Context is the caller-held blob that carries an in-flight transfer across
// turns. The machine is stateless: everything it needs on re-entry lives
// here, including the PIN attempt counter.
type Context struct {
	Stage            Stage           `json:"stage"`
	TransferID       string          `json:"transfer_id,omitempty"`
	Target           string          `json:"target,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency,omitempty"`
	AmountBase       decimal.Decimal `json:"amount_in_base_currency"`
	ExchangeRate     decimal.Decimal `json:"exchange_rate"`
	PasswordAttempts int             `json:"password_attempts,omitempty"`
	SourceLanguage   string          `json:"source_language,omitempty"`
	ConfirmMessage   string          `json:"confirm_message,omitempty"`
}

// DecodeContext parses a caller-supplied blob. A nil result means no transfer
// is in flight. The blob crosses a trust boundary, so decoding re-validates:
// a confirm or pin stage must carry the fully resolved transfer, otherwise a
// forged blob could walk straight into the commit.
func DecodeContext(raw json.RawMessage) (*Context, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" || trimmed == "{}" {
		return nil, nil
	}

	var c Context
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode context: %w", err)
	}
	if c.Stage == StageNone {
		return nil, nil
	}

	switch c.Stage {
	case StageNeedTarget, StageNeedAmount:
		// partial slots are fine mid-collection
	case StageConfirm, StagePIN:
		if c.TransferID == "" || c.Target == "" || !c.Amount.IsPositive() ||
			!c.ExchangeRate.IsPositive() || !c.AmountBase.IsPositive() {
			return nil, fmt.Errorf("context stage %q is missing resolved transfer fields", c.Stage)
		}
	default:
		return nil, fmt.Errorf("unknown context stage %q", c.Stage)
	}

	if c.PasswordAttempts < 0 || c.PasswordAttempts > maxPINAttempts {
		return nil, fmt.Errorf("invalid password attempt count %d", c.PasswordAttempts)
	}
	return &c, nil
}
