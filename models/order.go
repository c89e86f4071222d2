package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"boutique-backoffice/utils"
)

// Order is the backend's order/invoice record, kept as decoded JSON.
// The backend schema drifted over the years (items vs cart vs products, nested client
// objects), so fields are read through tolerant accessors instead of a fixed struct.
// Example payload:
// {
//   "id": 42,
//   "numero": "CMD-42",
//   "created_at": "2024-03-05T09:07:00Z",
//   "client": {"name": "Amira Ben Salah", "phone": "+216 20 000 000"},
//   "items": [{"designation": "Savon", "quantity": 2, "unit_price": 4.5}],
//   "prix_ht": 7.563, "tva": 1.437, "timbre": 1, "remise": 0, "prix_ttc": 10
// }
type Order map[string]any

// itemListKeys are checked in order; the first array wins
var itemListKeys = []string{"items", "cart", "products"}

// ID returns the record identifier as a string, empty when absent
func (o Order) ID() string {
	for _, key := range []string{"id", "_id", "identifier"} {
		if s := scalarString(o[key]); s != "" {
			return s
		}
	}
	return ""
}

// Numero returns the business order number, empty when absent
func (o Order) Numero() string {
	return scalarString(o["numero"])
}

// String returns the first non-empty scalar among keys.
// Dotted keys ("client.name") read one level into nested objects.
func (o Order) String(keys ...string) string {
	for _, key := range keys {
		if s := strings.TrimSpace(scalarString(o.lookup(key))); s != "" {
			return s
		}
	}
	return ""
}

// Number returns the first numeric value among keys, 0 when none is numeric
func (o Order) Number(keys ...string) float64 {
	for _, key := range keys {
		v := o.lookup(key)
		if utils.IsNumeric(v) {
			return utils.ToFloat(v)
		}
	}
	return 0
}

// Raw returns the stored value for key without conversion
func (o Order) Raw(key string) any {
	return o.lookup(key)
}

// CreatedAt parses created_at; ok is false when it is absent or malformed
func (o Order) CreatedAt(loc *time.Location) (time.Time, bool) {
	return utils.ParseTimestamp(o.String("created_at", "createdAt", "date"), loc)
}

// ClientName, ClientAddress and ClientPhone read flat or nested client fields
func (o Order) ClientName() string {
	name := o.String("client_name", "client.name", "nom_client", "customer_name", "client.nom")
	if name != "" {
		return name
	}
	first := o.String("client.first_name", "client.prenom")
	last := o.String("client.last_name", "client.nom_famille")
	return strings.TrimSpace(first + " " + last)
}

func (o Order) ClientAddress() string {
	return o.String("client_address", "client.address", "adresse", "client.adresse", "shipping_address")
}

func (o Order) ClientPhone() string {
	return o.String("client_phone", "client.phone", "telephone", "client.telephone", "phone")
}

// Items extracts the line items. A missing or non-array list yields an empty slice.
func (o Order) Items() []LineItem {
	for _, key := range itemListKeys {
		raw, ok := o[key].([]any)
		if !ok {
			continue
		}
		items := make([]LineItem, 0, len(raw))
		for _, entry := range raw {
			fields, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			items = append(items, newLineItem(Order(fields)))
		}
		return items
	}
	return []LineItem{}
}

func (o Order) lookup(key string) any {
	if v, ok := o[key]; ok {
		return v
	}
	parent, child, found := strings.Cut(key, ".")
	if !found {
		return nil
	}
	nested, ok := o[parent].(map[string]any)
	if !ok {
		return nil
	}
	return nested[child]
}

// scalarString renders strings and numbers; other JSON values read as empty
func scalarString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	}
	return ""
}

// LineItem is one normalized row of an order
type LineItem struct {
	Designation string  `json:"designation"`
	Reference   string  `json:"reference,omitempty"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
}

func newLineItem(fields Order) LineItem {
	item := LineItem{
		Designation: fields.String("designation", "name", "nom", "title", "product.name", "product.nom", "product.title"),
		Reference:   fields.String("reference", "ref", "sku", "product.reference"),
		Quantity:    1,
		UnitPrice:   fields.Number("unit_price", "prix_unitaire", "price", "prix", "product.price", "product.prix"),
	}
	for _, key := range []string{"quantity", "quantite", "qty"} {
		if utils.IsNumeric(fields[key]) {
			item.Quantity = utils.ToFloat(fields[key])
			break
		}
	}
	if item.Designation == "" {
		item.Designation = utils.EmptyValue
	}
	item.Total = item.Quantity * item.UnitPrice
	return item
}
