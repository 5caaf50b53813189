package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestReadDoc_DescribesRoutesAndPayloads(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Paths       map[string]map[string]json.RawMessage `json:"paths"`
		Definitions map[string]json.RawMessage            `json:"definitions"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	assert.Contains(t, doc.Paths["/v1/confirmation/confirm"], "post")
	assert.Contains(t, doc.Paths["/v1/mixer/quote"], "post")
	assert.Contains(t, doc.Definitions, "session.Snapshot")
	assert.Contains(t, doc.Definitions, "domain.PurchaseIntent")
	assert.Contains(t, doc.Definitions, "handler.errorResponse")
}

func TestReadDoc_ConfirmDeclaresBodyAndResponses(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Paths map[string]map[string]struct {
			Parameters []struct {
				In string `json:"in"`
			} `json:"parameters"`
			Responses map[string]json.RawMessage `json:"responses"`
		} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	op := doc.Paths["/v1/confirmation/confirm"]["post"]
	require.NotEmpty(t, op.Parameters)
	assert.Equal(t, "body", op.Parameters[0].In)
	assert.Contains(t, op.Responses, "200")
}
