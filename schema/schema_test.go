package schema_test

import (
	"reflect"
	"testing"

	"github.com/nash-app/nash-tools/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SwapRequest mirrors the shape of a typical tool parameters struct.
type SwapRequest struct {
	TokenAddress string  `json:"token_address" jsonschema:"title=Token Address,description=Address of token to swap to"`
	Amount       float64 `json:"amount" jsonschema:"title=Amount,description=Amount of SOL to swap"`
	SlippageBps  int     `json:"slippage_bps,omitempty" jsonschema:"title=Slippage,description=Slippage in basis points"`
}

type PriceFilter struct {
	Field string `json:"field" jsonschema:"description=Field to filter on"`
	Value string `json:"value" jsonschema:"description=Value to match"`
}

type ListRequest struct {
	Resolution string        `json:"resolution" jsonschema:"title=Resolution,description=Time window resolution,enum=1,enum=5,enum=60,enum=1D"`
	Filters    []*PriceFilter `json:"filters,omitempty" jsonschema:"title=Filters,description=Optional filters"`
}

func TestSchema(t *testing.T) {
	t.Parallel()

	t.Run("flat", func(t *testing.T) {
		t.Parallel()
		s, err := schema.New(reflect.TypeOf(SwapRequest{}))
		require.NoError(t, err)

		exp := `{
	"properties": {
		"token_address": {
			"type": "string",
			"title": "Token Address",
			"description": "Address of token to swap to"
		},
		"amount": {
			"type": "number",
			"title": "Amount",
			"description": "Amount of SOL to swap"
		},
		"slippage_bps": {
			"type": "integer",
			"title": "Slippage",
			"description": "Slippage in basis points"
		}
	},
	"type": "object",
	"required": [
		"token_address",
		"amount"
	]
}`
		assert.Equal(t, exp, s.String())
	})

	t.Run("nested", func(t *testing.T) {
		t.Parallel()
		s, err := schema.New(reflect.TypeOf(ListRequest{}))
		require.NoError(t, err)

		props := s.Parameters.Properties
		require.NotNil(t, props)

		res, ok := props.Get("resolution")
		require.True(t, ok)
		assert.Equal(t, "string", res.Type)
		assert.Len(t, res.Enum, 4)

		filters, ok := props.Get("filters")
		require.True(t, ok)
		assert.Equal(t, "array", filters.Type)
		require.NotNil(t, filters.Items)
		_, ok = filters.Items.Properties.Get("field")
		assert.True(t, ok)
	})

	t.Run("cached", func(t *testing.T) {
		t.Parallel()
		s1, err := schema.New(reflect.TypeOf(SwapRequest{}))
		require.NoError(t, err)
		s2, err := schema.New(reflect.TypeOf(SwapRequest{}))
		require.NoError(t, err)
		assert.Same(t, s1, s2)
	})
}
