package cdek_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/cdek/pkg/cdek"
)

func TestResponse_JSONKeepsNumbers(t *testing.T) {
	t.Parallel()

	resp := &cdek.Response{
		StatusCode: http.StatusOK,
		Body:       json.RawMessage(`{"delivery_sum":1000.10,"total_sum":12345678901234567890}`),
	}

	value, err := resp.JSON()
	require.NoError(t, err)

	fields := value.(map[string]interface{})
	assert.Equal(t, json.Number("1000.10"), fields["delivery_sum"])
	assert.Equal(t, json.Number("12345678901234567890"), fields["total_sum"])
}

func TestResponse_EmptyBody(t *testing.T) {
	t.Parallel()

	resp := &cdek.Response{StatusCode: http.StatusNoContent}

	value, err := resp.JSON()
	require.NoError(t, err)
	assert.Nil(t, value)

	var target map[string]interface{}

	require.NoError(t, resp.Decode(&target))
	assert.Nil(t, target)
}

func TestResponse_DecodeError(t *testing.T) {
	t.Parallel()

	resp := &cdek.Response{Body: json.RawMessage(`not json`)}

	var target map[string]interface{}

	err := resp.Decode(&target)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding response body")

	_, err = resp.JSON()
	require.Error(t, err)
}

func TestResponse_Entity(t *testing.T) {
	t.Parallel()

	resp := &cdek.Response{
		StatusCode: http.StatusOK,
		Body: json.RawMessage(`{
			"entity": {"uuid": "72753031-2801-4c3b-a5a8-d18eb2b2b8b6", "cdek_number": 1106207236, "number": "ORDER-1", "tariff_code": 139},
			"requests": [{"request_uuid": "r-1", "type": "CREATE", "state": "SUCCESSFUL", "date_time": "2024-03-01T10:00:00+0000"}],
			"related_entities": [{"type": "waybill", "uuid": "w-1", "url": "https://api.cdek.ru/v2/print/orders/w-1.pdf"}]
		}`),
	}

	envelope, err := resp.Entity()
	require.NoError(t, err)
	require.NotNil(t, envelope.Entity)

	assert.Equal(t, "72753031-2801-4c3b-a5a8-d18eb2b2b8b6", envelope.Entity.UUID)
	assert.Equal(t, json.Number("1106207236"), envelope.Entity.CDEKNumber)
	assert.Equal(t, "ORDER-1", envelope.Entity.Number)
	assert.Contains(t, string(envelope.Entity.Raw), `"tariff_code": 139`)

	require.Len(t, envelope.Requests, 1)
	assert.Equal(t, "SUCCESSFUL", envelope.Requests[0].State)

	require.Len(t, envelope.Related, 1)
	assert.Equal(t, "waybill", envelope.Related[0].Type)
}
