package cdek_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/cdek/pkg/cdek"
)

func TestTariffRequest_Document(t *testing.T) {
	t.Parallel()

	from, to := 270, 44
	date := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("MSK", 3*60*60))

	request := &cdek.TariffRequest{
		TariffCode:   139,
		FromLocation: cdek.Address{Code: &from},
		ToLocation:   cdek.Address{Code: &to, Address: "ул. Ленина, 1"},
		Packages: []cdek.Dimensions{
			{Weight: 4000, Length: 40, Width: 35, Height: 30},
			{Weight: 200, Length: 10},
		},
		Date:     &date,
		Currency: 1,
		Services: []cdek.Service{{Code: "INSURANCE", Parameter: "5000"}, {Code: "SMS"}},
	}
	require.NoError(t, request.Validate())

	data, err := cdek.Serialize(request.Document())
	require.NoError(t, err)

	body := serialized(t, data)
	assert.Equal(t, map[string]interface{}{
		"tariff_code":   float64(139),
		"from_location": map[string]interface{}{"code": float64(270)},
		"to_location":   map[string]interface{}{"code": float64(44), "address": "ул. Ленина, 1"},
		"packages": []interface{}{
			map[string]interface{}{"weight": float64(4000), "length": float64(40), "width": float64(35), "height": float64(30)},
			map[string]interface{}{"weight": float64(200)},
		},
		"date":     "2024-03-01T12:00:00+0300",
		"currency": float64(1),
		"services": []interface{}{
			map[string]interface{}{"code": "INSURANCE", "parameter": "5000"},
			map[string]interface{}{"code": "SMS"},
		},
	}, body)
}

func TestTariffRequest_Validate(t *testing.T) {
	t.Parallel()

	var missing *cdek.TariffRequest

	require.ErrorIs(t, missing.Validate(), cdek.ErrValidation)
	require.ErrorIs(t, (&cdek.TariffRequest{Packages: []cdek.Dimensions{{Weight: 1}}}).Validate(), cdek.ErrValidation)

	from, to := 270, 44
	packages := []cdek.Dimensions{{Weight: 100}}

	tests := []struct {
		name    string
		request cdek.TariffRequest
		field   string
	}{
		{"no from location", cdek.TariffRequest{TariffCode: 136, ToLocation: cdek.Address{Code: &to}, Packages: packages}, "from_location"},
		{"no to location", cdek.TariffRequest{TariffCode: 136, FromLocation: cdek.Address{Code: &from}, Packages: packages}, "to_location"},
		{"no packages", cdek.TariffRequest{TariffCode: 136, FromLocation: cdek.Address{Code: &from}, ToLocation: cdek.Address{PostalCode: "101000"}}, "packages"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.request.Validate()
			require.ErrorIs(t, err, cdek.ErrValidation)

			var validationErr *cdek.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}

	valid := cdek.TariffRequest{TariffCode: 136, FromLocation: cdek.Address{Code: &from}, ToLocation: cdek.Address{Code: &to}, Packages: packages}
	assert.NoError(t, valid.Validate())
	assert.True(t, cdek.Address{}.IsEmpty())
	assert.False(t, cdek.Address{City: "Москва"}.IsEmpty())
}

func TestOrderSelector(t *testing.T) {
	t.Parallel()

	assert.True(t, cdek.OrderSelector{}.IsEmpty())
	require.ErrorIs(t, cdek.OrderSelector{}.Validate(), cdek.ErrValidation)

	for _, selector := range []cdek.OrderSelector{
		{UUID: "abc"},
		{CDEKNumber: 1106207236},
		{IMNumber: "ORDER-1"},
	} {
		assert.False(t, selector.IsEmpty())
		assert.NoError(t, selector.Validate())
	}
}

func TestCityFilter_Document(t *testing.T) {
	t.Parallel()

	var missing *cdek.CityFilter

	assert.Empty(t, cdek.Normalize(missing.Document()))
	assert.Empty(t, cdek.Normalize((&cdek.CityFilter{}).Document()))

	region, page := 23, 0
	doc := cdek.Normalize((&cdek.CityFilter{
		CountryCodes: []string{"RU"},
		RegionCode:   &region,
		PostalCode:   "630001",
		Page:         &page,
		Lang:         "rus",
	}).Document())

	assert.Equal(t, cdek.Document{
		"country_codes": []string{"RU"},
		"region_code":   23,
		"postal_code":   "630001",
		"page":          0,
		"lang":          "rus",
	}, doc)
}
