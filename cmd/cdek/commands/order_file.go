package commands

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/cdek/internal/constants"
	"github.com/fivetwenty-io/cdek/pkg/cdek"
)

// newNumber generates order and package numbers left empty in an order file.
var newNumber = uuid.NewString

// OrderFile is the YAML (or JSON) description of an order accepted by
// 'cdek orders create --file'.
type OrderFile struct {
	TariffCode    int                    `yaml:"tariff_code"`
	Type          int                    `yaml:"type"`
	Number        string                 `yaml:"number"`
	Comment       string                 `yaml:"comment"`
	ShipmentPoint string                 `yaml:"shipment_point"`
	DeliveryPoint string                 `yaml:"delivery_point"`
	Recipient     map[string]interface{} `yaml:"recipient"`
	Sender        map[string]interface{} `yaml:"sender"`
	FromLocation  *AddressFile           `yaml:"from_location"`
	ToLocation    *AddressFile           `yaml:"to_location"`
	Packages      []PackageFile          `yaml:"packages"`
	Services      []ServiceFile          `yaml:"services"`
}

// AddressFile is a location block of an order file.
type AddressFile struct {
	Code        *int   `yaml:"code"`
	PostalCode  string `yaml:"postal_code"`
	CountryCode string `yaml:"country_code"`
	City        string `yaml:"city"`
	Address     string `yaml:"address"`
}

// PackageFile is a package of an order file.
type PackageFile struct {
	Number  string     `yaml:"number"`
	Weight  int        `yaml:"weight"`
	Length  int        `yaml:"length"`
	Width   int        `yaml:"width"`
	Height  int        `yaml:"height"`
	Comment string     `yaml:"comment"`
	Items   []ItemFile `yaml:"items"`
}

// ItemFile is a package item of an order file. Cost and payment keep the
// decimal digits written in the file.
type ItemFile struct {
	Name    string     `yaml:"name"`
	WareKey string     `yaml:"ware_key"`
	Cost    cdek.Money `yaml:"cost"`
	Payment cdek.Money `yaml:"payment"`
	Weight  int        `yaml:"weight"`
	Amount  int        `yaml:"amount"`
	Marking string     `yaml:"marking"`
}

// ServiceFile is an additional service of an order file.
type ServiceFile struct {
	Code      string `yaml:"code"`
	Parameter string `yaml:"parameter"`
}

// readOrderFile loads an order file from disk.
func readOrderFile(path string) (*OrderFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read order file: %w", err)
	}

	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", constants.ErrNotRegularFile, path)
	}

	// #nosec G304 -- path is supplied by the operator on the command line
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read order file: %w", err)
	}

	return parseOrderFile(data)
}

func parseOrderFile(data []byte) (*OrderFile, error) {
	var order OrderFile

	err := yaml.Unmarshal(data, &order)
	if err != nil {
		return nil, fmt.Errorf("failed to parse order file: %w", err)
	}

	return &order, nil
}

// DeliveryRequest converts the file into an order builder.
func (f *OrderFile) DeliveryRequest() (*cdek.DeliveryRequest, error) {
	number := f.Number
	if number == "" {
		number = newNumber()
	}

	request := cdek.NewDeliveryRequest()
	request.AddOrder(cdek.OrderFields{
		TariffCode:    f.TariffCode,
		Type:          f.Type,
		Number:        number,
		Comment:       f.Comment,
		ShipmentPoint: f.ShipmentPoint,
		DeliveryPoint: f.DeliveryPoint,
		Recipient:     documentOrNil(f.Recipient),
		Sender:        documentOrNil(f.Sender),
	})

	for location, address := range map[cdek.LocationType]*AddressFile{
		cdek.LocationFrom: f.FromLocation,
		cdek.LocationTo:   f.ToLocation,
	} {
		if address == nil {
			continue
		}

		_, err := request.AddAddress(location, address.toAddress())
		if err != nil {
			return nil, err
		}
	}

	for _, pkgFile := range f.Packages {
		pkgNumber := pkgFile.Number
		if pkgNumber == "" {
			pkgNumber = newNumber()
		}

		pkg := request.AddPackage(cdek.PackageFields{
			Number:  pkgNumber,
			Weight:  pkgFile.Weight,
			Length:  pkgFile.Length,
			Width:   pkgFile.Width,
			Height:  pkgFile.Height,
			Comment: pkgFile.Comment,
		})

		for _, item := range pkgFile.Items {
			request.AddItem(pkg, cdek.ItemFields{
				Name:    item.Name,
				WareKey: item.WareKey,
				Cost:    item.Cost,
				Payment: item.Payment,
				Weight:  item.Weight,
				Amount:  item.Amount,
				Marking: item.Marking,
			})
		}
	}

	for _, service := range f.Services {
		request.AddService(service.Code, service.Parameter)
	}

	return request, nil
}

func (a *AddressFile) toAddress() cdek.Address {
	return cdek.Address{
		Code:        a.Code,
		PostalCode:  a.PostalCode,
		CountryCode: a.CountryCode,
		City:        a.City,
		Address:     a.Address,
	}
}

func documentOrNil(m map[string]interface{}) cdek.Document {
	if m == nil {
		return nil
	}

	return cdek.Document(m)
}
