package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional_UnmarshalJSON(t *testing.T) {
	var body struct {
		Note      Optional[string] `json:"note"`
		Inventory Optional[int]    `json:"inventory"`
		Price     Optional[string] `json:"price"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"note":null,"inventory":7}`), &body))

	assert.True(t, body.Note.Set)
	assert.Nil(t, body.Note.Value)
	assert.True(t, body.Inventory.Set)
	require.NotNil(t, body.Inventory.Value)
	assert.Equal(t, 7, *body.Inventory.Value)
	assert.False(t, body.Price.Set)
}

func TestOptional_RejectsWrongType(t *testing.T) {
	var body struct {
		Inventory Optional[int] `json:"inventory"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"inventory":"many"}`), &body))
}
