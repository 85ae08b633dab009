package agent

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/TEAM-BIRDIE/BeoTT/internal/llm"
)

// SlotExtractor asks the language model to pull {target, amount, currency}
// out of free text. It never validates the values and never fails: malformed
// model output simply means all slots are missing, which the state machine
// handles the same way as a user who said nothing useful.
type SlotExtractor struct {
	llm LanguageModel
}

func NewSlotExtractor(lm LanguageModel) *SlotExtractor {
	return &SlotExtractor{llm: lm}
}

type rawSlots struct {
	Target   *string      `json:"target"`
	Amount   *json.Number `json:"amount"`
	Currency *string      `json:"currency"`
}

func (e *SlotExtractor) Extract(utterance string) (target string, amount decimal.Decimal, currency string) {
	out, err := e.llm.Complete(fmt.Sprintf(llm.TransferExtractPrompt, utterance))
	if err != nil {
		log.Printf("slot extraction failed: %v", err)
		return "", decimal.Decimal{}, ""
	}

	var raw rawSlots
	if err := json.Unmarshal([]byte(llm.ExtractJSON(out)), &raw); err != nil {
		log.Printf("slot extraction returned unparseable JSON: %v", err)
		return "", decimal.Decimal{}, ""
	}

	if raw.Target != nil {
		target = strings.TrimSpace(*raw.Target)
	}
	if raw.Amount != nil {
		if d, err := decimal.NewFromString(raw.Amount.String()); err == nil && d.IsPositive() {
			amount = d
		}
	}
	if raw.Currency != nil {
		currency = strings.ToUpper(strings.TrimSpace(*raw.Currency))
	}
	return target, amount, currency
}
