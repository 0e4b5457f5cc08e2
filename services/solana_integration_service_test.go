package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeParsedTokenAccount(t *testing.T) {
	raw := []byte(`{
		"program": "spl-token",
		"parsed": {
			"type": "account",
			"info": {
				"mint": "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263",
				"owner": "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM",
				"tokenAmount": {"amount": "1234500", "decimals": 5, "uiAmount": 12.345, "uiAmountString": "12.345"}
			}
		},
		"space": 165
	}`)

	acc, err := decodeParsedTokenAccount(raw)
	require.NoError(t, err)
	assert.Equal(t, "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263", acc.Mint)
	assert.Equal(t, "1234500", acc.RawAmount)
	assert.Equal(t, 12.345, acc.UIAmount)
}

func TestDecodeParsedTokenAccount_NullUIAmount(t *testing.T) {
	acc, err := decodeParsedTokenAccount([]byte(`{"parsed":{"info":{"mint":"M","tokenAmount":{"amount":"0","decimals":0,"uiAmount":null}}}}`))
	require.NoError(t, err)
	assert.Zero(t, acc.UIAmount)
}

func TestDecodeParsedTokenAccount_Invalid(t *testing.T) {
	_, err := decodeParsedTokenAccount(nil)
	assert.Error(t, err)
	_, err = decodeParsedTokenAccount([]byte(`{"parsed":{"info":{}}}`))
	assert.Error(t, err)
	_, err = decodeParsedTokenAccount([]byte(`[1,2`))
	assert.Error(t, err)
}
