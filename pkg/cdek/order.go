package cdek

import (
	"time"

	"github.com/fivetwenty-io/cdek/internal/constants"
)

// LocationType names an address block of an order. The only valid values are
// LocationFrom and LocationTo; the zero value is rejected.
type LocationType struct {
	key string
}

var (
	// LocationFrom is the sender address block ("from_location").
	LocationFrom = LocationType{key: "from_location"}

	// LocationTo is the recipient address block ("to_location").
	LocationTo = LocationType{key: "to_location"}
)

// String returns the document key of the block.
func (l LocationType) String() string {
	return l.key
}

func (l LocationType) valid() bool {
	return l == LocationFrom || l == LocationTo
}

// ParseLocationType converts "from_location" or "to_location" into a LocationType.
func ParseLocationType(name string) (LocationType, error) {
	switch name {
	case LocationFrom.key:
		return LocationFrom, nil
	case LocationTo.key:
		return LocationTo, nil
	default:
		return LocationType{}, newValidationError("location_type", "must be from_location or to_location, got "+quote(name))
	}
}

// OrderFields are the top-level fields of an order. Empty strings, zero
// optional numbers and nil documents are omitted from the request.
type OrderFields struct {
	TariffCode     int
	Type           int // 1 online store, 2 delivery; zero means 1
	Number         string
	Comment        string
	DeveloperKey   string
	ShipmentPoint  string
	DeliveryPoint  string
	DateInvoice    *time.Time
	ShipperName    string
	ShipperAddress string
	Print          string

	Recipient                Document
	Sender                   Document
	Seller                   Document
	DeliveryRecipientCost    Document
	DeliveryRecipientCostAdv []Document
}

// Address is a from/to location block.
type Address struct {
	Code        *int
	FiasGUID    string
	PostalCode  string
	Longitude   *float64
	Latitude    *float64
	CountryCode string
	Region      string
	RegionCode  *int
	SubRegion   string
	City        string
	Address     string
}

// IsEmpty reports whether no address field is set.
func (a Address) IsEmpty() bool {
	return a == Address{}
}

// PackageFields describe one package. Length, Width and Height are only sent
// when all three are set; otherwise all three are omitted.
type PackageFields struct {
	Number  string
	Weight  int
	Length  int
	Width   int
	Height  int
	Comment string // defaults to "Package"
}

// ItemFields describe one line item of a package.
type ItemFields struct {
	Name        string
	WareKey     string
	Cost        Money
	Weight      int
	Amount      int
	Marking     string
	Payment     Money // cash on delivery; zero by default
	WeightGross int
	NameI18n    string
	Brand       string
	CountryCode string
	Material    int
	WifiGSM     *bool
	URL         string
}

// DeliveryRequest builds an order document step by step. Each instance owns
// its document; builders never share state.
type DeliveryRequest struct {
	document Document
}

// NewDeliveryRequest creates an empty order builder.
func NewDeliveryRequest() *DeliveryRequest {
	return &DeliveryRequest{document: Document{}}
}

// Document returns the live order document.
func (r *DeliveryRequest) Document() Document {
	return r.document
}

// AddOrder sets the top-level order fields and returns the document.
func (r *DeliveryRequest) AddOrder(fields OrderFields) Document {
	orderType := fields.Type
	if orderType == 0 {
		orderType = constants.DefaultOrderType
	}

	doc := r.document
	doc.set("tariff_code", fields.TariffCode)
	doc.set("type", orderType)
	doc.set("number", optString(fields.Number))
	doc.set("comment", optString(fields.Comment))
	doc.set("developer_key", optString(fields.DeveloperKey))
	doc.set("shipment_point", optString(fields.ShipmentPoint))
	doc.set("delivery_point", optString(fields.DeliveryPoint))
	doc.set("date_invoice", optDate(fields.DateInvoice))
	doc.set("shipper_name", optString(fields.ShipperName))
	doc.set("shipper_address", optString(fields.ShipperAddress))
	doc.set("delivery_recipient_cost", fields.DeliveryRecipientCost)
	doc.set("delivery_recipient_cost_adv", fields.DeliveryRecipientCostAdv)
	doc.set("sender", fields.Sender)
	doc.set("seller", fields.Seller)
	doc.set("recipient", fields.Recipient)
	doc.set("print", optString(fields.Print))

	return doc
}

// AddAddress inserts or replaces the from/to location block.
func (r *DeliveryRequest) AddAddress(location LocationType, address Address) (Document, error) {
	if !location.valid() {
		return nil, newValidationError("location_type", "must be from_location or to_location")
	}

	r.document[location.key] = address.toDocument()

	return r.document, nil
}

// RemoveAddress drops a location block, e.g. for orders handed over at a shipment point.
func (r *DeliveryRequest) RemoveAddress(location LocationType) Document {
	delete(r.document, location.key)

	return r.document
}

// AddPackage appends a package and returns it so items can be attached.
func (r *DeliveryRequest) AddPackage(fields PackageFields) Document {
	comment := fields.Comment
	if comment == "" {
		comment = constants.DefaultPackageComment
	}

	pkg := Document{
		"number":  fields.Number,
		"weight":  fields.Weight,
		"comment": comment,
	}
	setDimensions(pkg, fields.Length, fields.Width, fields.Height)

	packages, _ := r.document["packages"].([]Document)
	r.document["packages"] = append(packages, pkg)

	return pkg
}

// AddItem appends an item to a package returned by AddPackage. Earlier items are kept.
func (r *DeliveryRequest) AddItem(pkg Document, fields ItemFields) Document {
	item := Document{
		"name":     fields.Name,
		"ware_key": fields.WareKey,
		"cost":     fields.Cost,
		"weight":   fields.Weight,
		"amount":   fields.Amount,
		"payment":  Document{"value": fields.Payment},
	}
	item.set("marking", optString(fields.Marking))
	item.set("weight_gross", optInt(fields.WeightGross))
	item.set("name_i18n", optString(fields.NameI18n))
	item.set("brand", optString(fields.Brand))
	item.set("country_code", optString(fields.CountryCode))
	item.set("material", optInt(fields.Material))
	item.set("wifi_gsm", fields.WifiGSM)
	item.set("url", optString(fields.URL))

	items, _ := pkg["items"].([]Document)
	pkg["items"] = append(items, item)

	return pkg
}

// AddService attaches an additional service, replacing an entry with the same code.
func (r *DeliveryRequest) AddService(code, parameter string) Document {
	service := Document{"code": code}
	service.set("parameter", optString(parameter))

	services, _ := r.document["services"].([]Document)
	for i, existing := range services {
		if existing["code"] == code {
			services[i] = service
			r.document["services"] = services

			return r.document
		}
	}

	r.document["services"] = append(services, service)

	return r.document
}

// Serialize normalizes the document and encodes it as JSON.
func (r *DeliveryRequest) Serialize() ([]byte, error) {
	return Serialize(r.document)
}

func (a Address) toDocument() Document {
	doc := Document{}
	doc.set("code", a.Code)
	doc.set("fias_guid", optString(a.FiasGUID))
	doc.set("postal_code", optString(a.PostalCode))
	doc.set("longitude", a.Longitude)
	doc.set("latitude", a.Latitude)
	doc.set("country_code", optString(a.CountryCode))
	doc.set("region", optString(a.Region))
	doc.set("region_code", a.RegionCode)
	doc.set("sub_region", optString(a.SubRegion))
	doc.set("city", optString(a.City))
	doc.set("address", optString(a.Address))

	return doc
}

// setDimensions writes length/width/height only when all three are present.
func setDimensions(doc Document, length, width, height int) {
	if length <= 0 || width <= 0 || height <= 0 {
		doc["length"] = nil
		doc["width"] = nil
		doc["height"] = nil

		return
	}

	doc["length"] = length
	doc["width"] = width
	doc["height"] = height
}

func optString(value string) *string {
	if value == "" {
		return nil
	}

	return &value
}

func optInt(value int) *int {
	if value == 0 {
		return nil
	}

	return &value
}

func optDate(value *time.Time) *string {
	if value == nil {
		return nil
	}

	formatted := value.Format(time.DateOnly)

	return &formatted
}

func quote(value string) string {
	return `"` + value + `"`
}

// Validate performs the presence checks run before an order is sent.
func (r *DeliveryRequest) Validate() error {
	if r == nil || r.document == nil {
		return newValidationError("order", "is required")
	}

	if _, ok := r.document["tariff_code"]; !ok {
		return newValidationError("tariff_code", "is required, call AddOrder first")
	}

	return nil
}
