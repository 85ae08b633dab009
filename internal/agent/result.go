package agent

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Status is the transfer protocol's wire vocabulary.
type Status string

const (
	StatusNeedInfo     Status = "NEED_INFO"
	StatusConfirm      Status = "CONFIRM"
	StatusNeedPassword Status = "NEED_PASSWORD"
	StatusSuccess      Status = "SUCCESS"
	StatusFail         Status = "FAIL"
	StatusCancel       Status = "CANCEL"
	StatusError        Status = "ERROR"
)

// Terminal reports whether no further turns are valid against the context.
func (s Status) Terminal() bool {
	switch s {
	case StatusSuccess, StatusFail, StatusCancel, StatusError:
		return true
	}
	return false
}

// TransferResult is what every transfer turn returns. Non-terminal results
// carry the context the caller must echo back on the next call; terminal
// results carry none.
type TransferResult struct {
	Status  Status   `json:"status"`
	Field   string   `json:"field,omitempty"`
	Message string   `json:"message"`
	Context *Context `json:"context,omitempty"`
}

// Result is the orchestrator's answer for one turn: either a plain localized
// answer or a structured transfer result.
type Result struct {
	Answer   string          `json:"answer,omitempty"`
	Transfer *TransferResult `json:"transfer,omitempty"`
}

func errorResult(message string) *TransferResult {
	return &TransferResult{Status: StatusError, Message: message}
}

func needInfo(tc *Context, field, message string) *TransferResult {
	return &TransferResult{Status: StatusNeedInfo, Field: field, Message: message, Context: tc}
}

// formatAmount renders a decimal with thousands separators for user-facing
// messages: 50000 -> "50,000".
func formatAmount(d decimal.Decimal) string {
	s := d.String()
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String()
	if frac != "" {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}
