package cdek

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// Response is a successful API reply. Body holds the JSON exactly as the
// server sent it.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       json.RawMessage
}

// Decode unmarshals the body into v.
func (r *Response) Decode(v interface{}) error {
	if len(r.Body) == 0 {
		return nil
	}

	err := json.Unmarshal(r.Body, v)
	if err != nil {
		return fmt.Errorf("decoding response body: %w", err)
	}

	return nil
}

// JSON decodes the body into generic maps and slices. Numbers are kept as
// json.Number so monetary values lose no precision.
func (r *Response) JSON() (interface{}, error) {
	if len(r.Body) == 0 {
		return nil, nil //nolint:nilnil
	}

	decoder := json.NewDecoder(bytes.NewReader(r.Body))
	decoder.UseNumber()

	var value interface{}

	err := decoder.Decode(&value)
	if err != nil {
		return nil, fmt.Errorf("decoding response body: %w", err)
	}

	return value, nil
}

// EntityResponse is the envelope CDEK returns for order and pre-alert
// operations.
type EntityResponse struct {
	Entity   *Entity         `json:"entity,omitempty"           yaml:"entity,omitempty"`
	Requests []RequestStatus `json:"requests,omitempty"         yaml:"requests,omitempty"`
	Related  []RelatedEntity `json:"related_entities,omitempty" yaml:"related_entities,omitempty"`
}

// Entity carries the identifier of the affected object. The remaining fields
// depend on the operation and are kept in Raw.
type Entity struct {
	UUID       string          `json:"uuid"                  yaml:"uuid"`
	CDEKNumber json.Number     `json:"cdek_number,omitempty" yaml:"cdek_number,omitempty"`
	Number     string          `json:"number,omitempty"      yaml:"number,omitempty"`
	Raw        json.RawMessage `json:"-"                     yaml:"-"`
}

// UnmarshalJSON keeps the full entity payload alongside the typed fields.
func (e *Entity) UnmarshalJSON(data []byte) error {
	type plain Entity

	var decoded plain

	err := json.Unmarshal(data, &decoded)
	if err != nil {
		return err
	}

	*e = Entity(decoded)
	e.Raw = append(json.RawMessage(nil), data...)

	return nil
}

// RequestStatus reports the processing state of an asynchronous request.
type RequestStatus struct {
	RequestUUID string     `json:"request_uuid,omitempty" yaml:"request_uuid,omitempty"`
	Type        string     `json:"type"                   yaml:"type"`
	State       string     `json:"state"                  yaml:"state"`
	DateTime    string     `json:"date_time,omitempty"    yaml:"date_time,omitempty"`
	Errors      []APIError `json:"errors,omitempty"       yaml:"errors,omitempty"`
	Warnings    []APIError `json:"warnings,omitempty"     yaml:"warnings,omitempty"`
}

// RelatedEntity links to a document produced alongside the entity, such as a waybill.
type RelatedEntity struct {
	Type string `json:"type"          yaml:"type"`
	UUID string `json:"uuid"          yaml:"uuid"`
	URL  string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Entity decodes the body as an EntityResponse.
func (r *Response) Entity() (*EntityResponse, error) {
	var envelope EntityResponse

	err := r.Decode(&envelope)
	if err != nil {
		return nil, err
	}

	return &envelope, nil
}
