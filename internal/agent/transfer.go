package agent

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/TEAM-BIRDIE/BeoTT/internal/llm"
	"github.com/TEAM-BIRDIE/BeoTT/internal/models"
)

const maxPINAttempts = 5

var (
	yesTokens = []string{"__yes__", "y", "yes", "ok", "네", "응", "맞아", "확인", "좋아"}
	noTokens  = []string{"__no__", "n", "no", "cancel", "아니", "아니요", "취소"}
)

// TransferMachine is the transfer protocol. It holds no per-conversation
// state: every turn re-enters with the caller-supplied context, and "waiting
// for input" is modeled as returning a non-terminal result.
type TransferMachine struct {
	store        DataStore
	slots        *SlotExtractor
	contacts     *ContactResolver
	baseCurrency string
}

func NewTransferMachine(store DataStore, lm LanguageModel, baseCurrency string) *TransferMachine {
	return &TransferMachine{
		store:        store,
		slots:        NewSlotExtractor(lm),
		contacts:     NewContactResolver(store, lm),
		baseCurrency: baseCurrency,
	}
}

// Step runs one turn of the protocol. A nil context starts a fresh transfer.
func (m *TransferMachine) Step(utterance, username string, tc *Context) *TransferResult {
	member, err := m.store.GetMember(username)
	if err != nil {
		return errorResult("사용자를 찾을 수 없습니다.")
	}

	if tc == nil {
		tc = &Context{}
	}

	switch tc.Stage {
	case StagePIN:
		return m.verifyPIN(utterance, username, member.ID, tc)

	case StageConfirm:
		return m.confirm(utterance, tc)

	case StageNeedTarget:
		// The reply is the recipient; resolution happens below.
		tc.Target = strings.TrimSpace(utterance)
		tc.Stage = StageNone

	case StageNeedAmount:
		amount, err := llm.ParseAmount(utterance)
		if err != nil {
			return needInfo(tc, "amount", "금액을 숫자로 입력해주세요.")
		}
		tc.Amount = amount
		tc.Stage = StageNone

	default:
		if tc.TransferID == "" {
			tc.TransferID = uuid.New().String()
		}
		if tc.Target == "" && tc.Amount.IsZero() {
			tc.Target, tc.Amount, tc.Currency = m.slots.Extract(utterance)
		}
	}

	return m.advance(member.ID, tc)
}

// advance walks the slot pipeline: target -> resolution -> amount ->
// currency default -> rate -> balance -> confirmation prompt. It stops at
// the first gap and hands the turn back to the caller.
func (m *TransferMachine) advance(memberID int64, tc *Context) *TransferResult {
	if tc.Target == "" {
		tc.Stage = StageNeedTarget
		return needInfo(tc, "target", "송금할 대상을 입력해주세요.")
	}

	resolved, err := m.contacts.Resolve(memberID, tc.Target)
	if err != nil {
		return errorResult("연락처 조회 중 오류가 발생했습니다.")
	}
	if resolved == "" {
		message := fmt.Sprintf("'%s'님을 연락처에서 찾을 수 없습니다. 정확한 이름을 알려주세요.", tc.Target)
		tc.Target = ""
		tc.Stage = StageNeedTarget
		return needInfo(tc, "target", message)
	}
	tc.Target = resolved

	if tc.Amount.IsZero() {
		tc.Stage = StageNeedAmount
		return needInfo(tc, "amount", "송금 금액을 입력해주세요.")
	}

	if tc.Currency == "" {
		tc.Currency = m.baseCurrency
	}

	rate, err := m.store.GetExchangeRate(tc.Currency)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errorResult(fmt.Sprintf("%s 환율 정보를 찾을 수 없습니다.", tc.Currency))
		}
		return errorResult("환율 조회 중 오류가 발생했습니다.")
	}

	account, err := m.store.GetPrimaryAccount(memberID)
	if err != nil {
		return errorResult("주 계좌를 찾을 수 없습니다.")
	}

	amountBase := tc.Amount.Mul(rate)
	if amountBase.GreaterThan(account.Balance) {
		return errorResult("잔액이 부족합니다.")
	}

	tc.ExchangeRate = rate
	tc.AmountBase = amountBase
	tc.Stage = StageConfirm
	tc.ConfirmMessage = fmt.Sprintf(
		"%s님에게 %s %s (%s원) 송금하시겠습니까?",
		resolved, formatAmount(tc.Amount), tc.Currency, formatAmount(amountBase),
	)

	return &TransferResult{Status: StatusConfirm, Message: tc.ConfirmMessage, Context: tc}
}

// confirm interprets the reply against the yes/no vocabularies. Anything
// unrecognized re-issues the prompt and waits for another reply.
func (m *TransferMachine) confirm(utterance string, tc *Context) *TransferResult {
	answer := strings.ToLower(strings.TrimSpace(utterance))

	for _, no := range noTokens {
		if answer == no {
			return &TransferResult{Status: StatusCancel, Message: "송금이 취소되었습니다."}
		}
	}

	affirmed := false
	for _, yes := range yesTokens {
		if answer == yes {
			affirmed = true
			break
		}
	}
	if !affirmed {
		message := tc.ConfirmMessage
		if message == "" {
			message = "송금을 확인해주세요."
		}
		return &TransferResult{Status: StatusConfirm, Message: message, Context: tc}
	}

	// awaiting_password is only ever set here, after an explicit yes.
	tc.Stage = StagePIN
	tc.PasswordAttempts = 0
	return &TransferResult{Status: StatusNeedPassword, Message: "PIN Code를 입력해주세요.", Context: tc}
}

func (m *TransferMachine) verifyPIN(utterance, username string, memberID int64, tc *Context) *TransferResult {
	// The counter rides in the caller's context, so the bound holds across
	// process restarts too.
	if tc.PasswordAttempts >= maxPINAttempts {
		return &TransferResult{Status: StatusFail, Message: "PIN Code 5회 오류. 송금이 실패했습니다."}
	}

	hash, err := m.store.GetPINHash(username)
	if err != nil || hash == "" {
		return errorResult("사용자 정보를 찾을 수 없습니다.")
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(strings.TrimSpace(utterance))) != nil {
		tc.PasswordAttempts++
		if tc.PasswordAttempts >= maxPINAttempts {
			return &TransferResult{Status: StatusFail, Message: "PIN Code 5회 오류. 송금이 실패했습니다."}
		}
		return &TransferResult{
			Status:  StatusNeedPassword,
			Message: fmt.Sprintf("PIN Code 오류. 남은 기회: %d", maxPINAttempts-tc.PasswordAttempts),
			Context: tc,
		}
	}

	return m.commit(memberID, tc)
}

// commit performs the one controlled mutation. The balance comparison is
// repeated inside the store's transaction, so a stale context cannot
// overdraw the account.
func (m *TransferMachine) commit(memberID int64, tc *Context) *TransferResult {
	account, err := m.store.GetPrimaryAccount(memberID)
	if err != nil {
		return errorResult("주 계좌를 찾을 수 없습니다.")
	}
	contact, err := m.store.GetContact(memberID, tc.Target)
	if err != nil {
		return errorResult("연락처 정보를 찾을 수 없습니다.")
	}

	newBalance, err := m.store.Transfer(models.TransferRequest{
		AccountID:      account.ID,
		ContactID:      contact.ID,
		TransferID:     tc.TransferID,
		AmountBase:     tc.AmountBase,
		ExchangeRate:   tc.ExchangeRate,
		TargetAmount:   tc.Amount,
		TargetCurrency: tc.Currency,
	})
	if err != nil {
		if errors.Is(err, models.ErrInsufficientBalance) {
			return errorResult("잔액이 부족합니다.")
		}
		log.Printf("transfer %s failed: %v", tc.TransferID, err)
		return errorResult("송금 처리 중 오류가 발생했습니다.")
	}

	return &TransferResult{
		Status:  StatusSuccess,
		Message: fmt.Sprintf("송금이 완료되었습니다. (잔액: %s원)", formatAmount(newBalance)),
	}
}
