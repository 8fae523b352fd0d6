package cdek

import (
	"time"

	"github.com/fivetwenty-io/cdek/internal/constants"
)

// Dimensions describe a package for tariff calculation. Length, Width and
// Height follow the same all-or-nothing rule as PackageFields.
type Dimensions struct {
	Weight int
	Length int
	Width  int
	Height int
}

// Service is an additional service requested with a tariff or an order.
type Service struct {
	Code      string
	Parameter string
}

// TariffRequest holds the parameters of a tariff calculation.
type TariffRequest struct {
	TariffCode   int
	FromLocation Address
	ToLocation   Address
	Packages     []Dimensions
	Date         *time.Time
	Type         int
	Currency     int
	Lang         string
	Services     []Service
}

// Validate performs the presence checks run before a tariff request is sent.
func (t *TariffRequest) Validate() error {
	if t == nil {
		return newValidationError("tariff", "is required")
	}

	if t.TariffCode == 0 {
		return newValidationError("tariff_code", "is required")
	}

	if t.FromLocation.IsEmpty() {
		return newValidationError("from_location", "is required")
	}

	if t.ToLocation.IsEmpty() {
		return newValidationError("to_location", "is required")
	}

	if len(t.Packages) == 0 {
		return newValidationError("packages", "at least one package is required")
	}

	return nil
}

// Document assembles the request body. Null fields are left for Normalize.
func (t *TariffRequest) Document() Document {
	packages := make([]Document, 0, len(t.Packages))
	for _, dims := range t.Packages {
		pkg := Document{"weight": dims.Weight}
		setDimensions(pkg, dims.Length, dims.Width, dims.Height)
		packages = append(packages, pkg)
	}

	doc := Document{
		"tariff_code":   t.TariffCode,
		"from_location": t.FromLocation.toDocument(),
		"to_location":   t.ToLocation.toDocument(),
		"packages":      packages,
	}
	doc.set("type", optInt(t.Type))
	doc.set("currency", optInt(t.Currency))
	doc.set("lang", optString(t.Lang))

	if t.Date != nil {
		doc["date"] = t.Date.Format(constants.DateTimeLayout)
	}

	if len(t.Services) > 0 {
		services := make([]Document, 0, len(t.Services))
		for _, service := range t.Services {
			entry := Document{"code": service.Code}
			entry.set("parameter", optString(service.Parameter))
			services = append(services, entry)
		}

		doc["services"] = services
	}

	return doc
}

// OrderSelector identifies an order to look up. When several fields are set,
// UUID wins over CDEKNumber, which wins over IMNumber.
type OrderSelector struct {
	UUID       string
	CDEKNumber int64
	IMNumber   string
}

// IsEmpty reports whether no selector field is set.
func (s OrderSelector) IsEmpty() bool {
	return s.UUID == "" && s.CDEKNumber == 0 && s.IMNumber == ""
}

// Validate rejects a selector with no fields set.
func (s OrderSelector) Validate() error {
	if s.IsEmpty() {
		return newValidationError("order", "one of uuid, cdek_number or im_number is required")
	}

	return nil
}

// CityFilter narrows a city lookup. All fields are optional.
type CityFilter struct {
	CountryCodes []string
	RegionCode   *int
	FiasGUID     string
	PostalCode   string
	Code         *int
	City         string
	Size         int
	Page         *int
	Lang         string
}

// Document returns the filter as query parameters. Null fields are left for Normalize.
func (f *CityFilter) Document() Document {
	doc := Document{}
	if f == nil {
		return doc
	}

	if len(f.CountryCodes) > 0 {
		doc["country_codes"] = f.CountryCodes
	}

	doc.set("region_code", f.RegionCode)
	doc.set("fias_guid", optString(f.FiasGUID))
	doc.set("postal_code", optString(f.PostalCode))
	doc.set("code", f.Code)
	doc.set("city", optString(f.City))
	doc.set("size", optInt(f.Size))
	doc.set("page", f.Page)
	doc.set("lang", optString(f.Lang))

	return doc
}
