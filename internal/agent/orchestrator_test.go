package agent

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTestOrchestrator(store *fakeStore, lm *stubLLM, hist *fakeHistory) *Orchestrator {
	return New(store, lm, &fakeSearcher{}, hist, "KRW")
}

func TestHandleRejectsForgedContext(t *testing.T) {
	store := newFakeStore(t)
	lm := &stubLLM{}
	o := newTestOrchestrator(store, lm, &fakeHistory{})

	res := o.Handle(Input{
		Utterance: "1234",
		Username:  "demo",
		Context:   json.RawMessage(`{"stage": "pin", "password_attempts": 0}`),
	})
	require.NotNil(t, res.Transfer)
	require.Equal(t, StatusError, res.Transfer.Status)
	require.Contains(t, res.Transfer.Message, "대화 상태")
	require.Empty(t, store.ledger)
	require.Empty(t, lm.prompts)
}

// A full conversation through the HTTP-shaped entry point: route, confirm
// with a sentinel, enter the PIN. The sentinel and PIN turns must never hit
// the translation pass.
func TestHandleFullTransferConversation(t *testing.T) {
	store := newFakeStore(t)
	hist := &fakeHistory{}
	lm := &stubLLM{replies: []stubReply{
		normReply("Korean", "Mother한테 5만원 보내줘"),
		reply("TRANSFER"),
		reply(`{"target": "Mother", "amount": 50000, "currency": null}`),
	}}
	o := newTestOrchestrator(store, lm, hist)

	res := o.Handle(Input{Utterance: "Mother한테 5만원 보내줘", Username: "demo"})
	require.NotNil(t, res.Transfer)
	require.Equal(t, StatusConfirm, res.Transfer.Status)

	raw, err := json.Marshal(res.Transfer.Context)
	require.NoError(t, err)
	llmCalls := len(lm.prompts)

	res = o.Handle(Input{Utterance: "__YES__", Username: "demo", Context: raw})
	require.Equal(t, StatusNeedPassword, res.Transfer.Status)
	require.Len(t, lm.prompts, llmCalls)

	raw, err = json.Marshal(res.Transfer.Context)
	require.NoError(t, err)

	res = o.Handle(Input{Utterance: "1234", Username: "demo", Context: raw})
	require.Equal(t, StatusSuccess, res.Transfer.Status)
	require.Len(t, lm.prompts, llmCalls)
	require.Len(t, store.ledger, 1)
	require.True(t, store.account.Balance.Equal(decimal.NewFromInt(950000)))
}

func TestHandleResumeTranslatesForeignReply(t *testing.T) {
	store := newFakeStore(t)
	lm := &stubLLM{replies: []stubReply{
		normReply("English", "엄마"),              // normalize the reply
		reply("Mother"),                         // semantic contact match
		reply("Would you like to send 50,000?"), // back-translate the prompt
	}}
	o := newTestOrchestrator(store, lm, &fakeHistory{})

	tc := &Context{
		Stage:      StageNeedTarget,
		TransferID: "t-1",
		Amount:     decimal.NewFromInt(50000),
		Currency:   "KRW",
	}
	raw, err := json.Marshal(tc)
	require.NoError(t, err)

	res := o.Handle(Input{Utterance: "to my mother please", Username: "demo", Context: raw})
	require.NotNil(t, res.Transfer)
	require.Equal(t, StatusConfirm, res.Transfer.Status)
	require.Equal(t, "Mother", res.Transfer.Context.Target)
	require.Equal(t, "Would you like to send 50,000?", res.Transfer.Message)
	// The upgraded source language sticks to the context for later turns.
	require.Equal(t, "English", res.Transfer.Context.SourceLanguage)
}

func TestHandleResumeKeepsStoredSourceLanguage(t *testing.T) {
	store := newFakeStore(t)
	lm := &stubLLM{replies: []stubReply{
		reply("Transfer cancelled."), // back-translate the cancel message
	}}
	o := newTestOrchestrator(store, lm, &fakeHistory{})

	tc := &Context{
		Stage:          StageConfirm,
		TransferID:     "t-1",
		Target:         "Mother",
		Amount:         decimal.NewFromInt(50000),
		Currency:       "KRW",
		AmountBase:     decimal.NewFromInt(50000),
		ExchangeRate:   decimal.NewFromInt(1),
		SourceLanguage: "English",
		ConfirmMessage: "Mother님에게 50,000 KRW (50,000원) 송금하시겠습니까?",
	}
	raw, err := json.Marshal(tc)
	require.NoError(t, err)

	res := o.Handle(Input{Utterance: "__NO__", Username: "demo", Context: raw})
	require.Equal(t, StatusCancel, res.Transfer.Status)
	require.Equal(t, "Transfer cancelled.", res.Transfer.Message)
	// Only the back-translation ran; the sentinel skipped normalization.
	require.Len(t, lm.prompts, 1)
}

func TestHandleFreshTurnRoutes(t *testing.T) {
	store := newFakeStore(t)
	hist := &fakeHistory{}
	lm := &stubLLM{replies: []stubReply{
		normReply("Korean", "안녕"),
		reply("GENERAL"),
		reply("안녕하세요!"),
	}}
	o := newTestOrchestrator(store, lm, hist)

	res := o.Handle(Input{Utterance: "안녕", Username: "demo"})
	require.Nil(t, res.Transfer)
	require.Equal(t, "안녕하세요!", res.Answer)
	require.Len(t, hist.entries, 1)
}

func TestSkipTranslation(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"__YES__", true},
		{"__no__", true},
		{"1234", true},
		{"50,000", true},
		{"  9999  ", true},
		{"123456789012345", true},
		{"Mother", false},
		{"엄마한테 보내줘", false},
		{"fifty thousand won please", false},
	}
	for _, c := range cases {
		require.Equal(t, c.want, skipTranslation(c.in), "input=%q", c.in)
	}
}
