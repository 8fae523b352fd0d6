package cdek

import (
	"time"

	"github.com/fivetwenty-io/cdek/internal/constants"
)

// OrderRef identifies an order listed in a pre-alert. Set at least one field.
type OrderRef struct {
	OrderUUID  string
	CDEKNumber int64
	IMNumber   string
}

// PreAlert builds a pre-alert document announcing orders that will be handed
// over at a shipment point.
type PreAlert struct {
	document Document
}

// NewPreAlert starts a pre-alert for the given hand-over time and shipment
// point. The time is sent with its own UTC offset, e.g. 2024-03-01T10:00:00+0300.
func NewPreAlert(plannedDate time.Time, shipmentPoint string) *PreAlert {
	return &PreAlert{
		document: Document{
			"planned_date":   plannedDate.Format(constants.DateTimeLayout),
			"shipment_point": shipmentPoint,
			"orders":         []Document{},
		},
	}
}

// AddOrder appends an order reference. Previously added references are kept.
func (p *PreAlert) AddOrder(ref OrderRef) Document {
	order := Document{}
	order.set("order_uuid", optString(ref.OrderUUID))
	order.set("cdek_number", optInt64(ref.CDEKNumber))
	order.set("im_number", optString(ref.IMNumber))

	orders, _ := p.document["orders"].([]Document)
	p.document["orders"] = append(orders, order)

	return p.document
}

// Document returns the live pre-alert document.
func (p *PreAlert) Document() Document {
	return p.document
}

// Serialize normalizes the document and encodes it as JSON.
func (p *PreAlert) Serialize() ([]byte, error) {
	return Serialize(p.document)
}

// Validate performs the presence checks run before a pre-alert is sent.
func (p *PreAlert) Validate() error {
	if p == nil || p.document == nil {
		return newValidationError("prealert", "is required")
	}

	if point, _ := p.document["shipment_point"].(string); point == "" {
		return newValidationError("shipment_point", "is required")
	}

	return nil
}

func optInt64(value int64) *int64 {
	if value == 0 {
		return nil
	}

	return &value
}
