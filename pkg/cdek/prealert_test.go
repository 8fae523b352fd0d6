package cdek_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/cdek/pkg/cdek"
)

func TestPreAlert(t *testing.T) {
	t.Parallel()

	novosibirsk := time.FixedZone("NOVT", 7*60*60)
	preAlert := cdek.NewPreAlert(time.Date(2024, 3, 1, 9, 30, 0, 0, novosibirsk), "NSK12")

	data, err := preAlert.Serialize()
	require.NoError(t, err)

	body := serialized(t, data)
	assert.Equal(t, "2024-03-01T09:30:00+0700", body["planned_date"])
	assert.Equal(t, "NSK12", body["shipment_point"])
	assert.Equal(t, []interface{}{}, body["orders"])

	preAlert.AddOrder(cdek.OrderRef{OrderUUID: "72753031-2801-4c3b-a5a8-d18eb2b2b8b6"})
	preAlert.AddOrder(cdek.OrderRef{IMNumber: "ORDER-2"})
	preAlert.AddOrder(cdek.OrderRef{CDEKNumber: 1106207236})

	data, err = preAlert.Serialize()
	require.NoError(t, err)

	body = serialized(t, data)
	assert.Equal(t, []interface{}{
		map[string]interface{}{"order_uuid": "72753031-2801-4c3b-a5a8-d18eb2b2b8b6"},
		map[string]interface{}{"im_number": "ORDER-2"},
		map[string]interface{}{"cdek_number": float64(1106207236)},
	}, body["orders"])

	assert.NoError(t, preAlert.Validate())
}

func TestPreAlert_UTC(t *testing.T) {
	t.Parallel()

	preAlert := cdek.NewPreAlert(time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC), "MSK1")
	assert.Equal(t, "2024-12-31T23:00:00+0000", preAlert.Document()["planned_date"])
}

func TestPreAlert_Validate(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, cdek.NewPreAlert(time.Now(), "").Validate(), cdek.ErrValidation)

	var missing *cdek.PreAlert

	require.ErrorIs(t, missing.Validate(), cdek.ErrValidation)
}
