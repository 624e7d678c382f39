package tools_test

import (
	"testing"

	"github.com/nash-app/nash-tools/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	Message string `json:"message" validate:"required,min=1,max=1000"`
}

func TestUnmarshalInput(t *testing.T) {
	t.Parallel()

	var req echoRequest
	err := tools.UnmarshalInput(`{"message":"hello"}`, &req)
	require.NoError(t, err)
	assert.Equal(t, "hello", req.Message)

	// LLMs wrap JSON in fences and prose
	var req2 echoRequest
	err = tools.UnmarshalInput("Here you go:\n```json\n{\"message\":\"hi\"}\n```", &req2)
	require.NoError(t, err)
	assert.Equal(t, "hi", req2.Message)

	// blank input becomes an empty object, then fails required
	var req3 echoRequest
	err = tools.UnmarshalInput("", &req3)
	require.Error(t, err)
	assert.Equal(t, tools.CategoryValidation, tools.CategoryOf(err))
	assert.Contains(t, err.Error(), "Message")

	// malformed JSON
	var req4 echoRequest
	err = tools.UnmarshalInput(`{"message":`, &req4)
	require.Error(t, err)
	assert.Equal(t, tools.CategoryValidation, tools.CategoryOf(err))
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	type swapRequest struct {
		TokenAddress string  `json:"token_address" validate:"required,min=32,max=44"`
		Amount       float64 `json:"amount" validate:"required,gt=0,lte=10000"`
		SlippageBps  int     `json:"slippage_bps" validate:"required,gt=0,lte=1000"`
	}

	err := tools.ValidateStruct(&swapRequest{
		TokenAddress: "So11111111111111111111111111111111111111112",
		Amount:       1.5,
		SlippageBps:  50,
	})
	require.NoError(t, err)

	err = tools.ValidateStruct(&swapRequest{
		TokenAddress: "short",
		Amount:       20000,
		SlippageBps:  50,
	})
	require.Error(t, err)
	assert.Equal(t, tools.CategoryValidation, tools.CategoryOf(err))
	assert.Contains(t, err.Error(), "TokenAddress")
	assert.Contains(t, err.Error(), "Amount")
}
