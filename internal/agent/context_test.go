package agent

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestDecodeContextEmpty(t *testing.T) {
	for _, raw := range []string{"", "null", "{}", "  "} {
		tc, err := DecodeContext(json.RawMessage(raw))
		require.NoError(t, err, "raw=%q", raw)
		require.Nil(t, tc, "raw=%q", raw)
	}
}

func TestDecodeContextEmptyStage(t *testing.T) {
	tc, err := DecodeContext(json.RawMessage(`{"stage": "", "target": "Mother"}`))
	require.NoError(t, err)
	require.Nil(t, tc)
}

func TestDecodeContextInvalidJSON(t *testing.T) {
	_, err := DecodeContext(json.RawMessage(`{"stage": `))
	require.Error(t, err)
}

func TestDecodeContextUnknownStage(t *testing.T) {
	_, err := DecodeContext(json.RawMessage(`{"stage": "teleport"}`))
	require.Error(t, err)
}

// A blob claiming to be at the PIN gate without a fully resolved transfer
// must be rejected, not walked into the commit.
func TestDecodeContextForgedPINStage(t *testing.T) {
	for _, raw := range []string{
		`{"stage": "pin"}`,
		`{"stage": "pin", "target": "Mother"}`,
		`{"stage": "confirm", "transfer_id": "t-1", "target": "Mother", "amount": 50000}`,
		`{"stage": "pin", "transfer_id": "t-1", "target": "Mother", "amount": -1, "amount_in_base_currency": 50000, "exchange_rate": 1}`,
	} {
		_, err := DecodeContext(json.RawMessage(raw))
		require.Error(t, err, "raw=%s", raw)
	}
}

func TestDecodeContextAttemptsOutOfRange(t *testing.T) {
	raw := `{"stage": "pin", "transfer_id": "t-1", "target": "Mother", "amount": 50000,
		"amount_in_base_currency": 50000, "exchange_rate": 1, "password_attempts": 6}`
	_, err := DecodeContext(json.RawMessage(raw))
	require.Error(t, err)
}

func TestDecodeContextMidCollection(t *testing.T) {
	tc, err := DecodeContext(json.RawMessage(`{"stage": "need_amount", "target": "Mother", "amount": 0}`))
	require.NoError(t, err)
	require.NotNil(t, tc)
	require.Equal(t, StageNeedAmount, tc.Stage)
	require.Equal(t, "Mother", tc.Target)
}

func TestContextRoundTrip(t *testing.T) {
	in := &Context{
		Stage:          StageConfirm,
		TransferID:     "t-42",
		Target:         "Mother",
		Amount:         decimal.NewFromInt(100),
		Currency:       "USD",
		AmountBase:     decimal.RequireFromString("135050"),
		ExchangeRate:   decimal.RequireFromString("1350.50"),
		SourceLanguage: "English",
		ConfirmMessage: "Mother님에게 100 USD (135,050원) 송금하시겠습니까?",
	}

	raw, err := json.Marshal(in)
	require.NoError(t, err)

	out, err := DecodeContext(raw)
	require.NoError(t, err)
	require.Equal(t, in.Stage, out.Stage)
	require.Equal(t, in.TransferID, out.TransferID)
	require.Equal(t, in.Target, out.Target)
	require.True(t, in.Amount.Equal(out.Amount))
	require.True(t, in.AmountBase.Equal(out.AmountBase))
	require.True(t, in.ExchangeRate.Equal(out.ExchangeRate))
	require.Equal(t, in.SourceLanguage, out.SourceLanguage)
	require.Equal(t, in.ConfirmMessage, out.ConfirmMessage)
}
