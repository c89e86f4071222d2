package models

import (
	"fmt"
	"strings"

	"boutique-backoffice/utils"
)

// FieldKind selects the input rendered for a field
type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldTextarea FieldKind = "textarea"
	FieldCurrency FieldKind = "currency" // 3 decimals, dinar millimes
	FieldNumber   FieldKind = "number"
)

// FieldDescriptor declares one editable field of an entity.
// Aliases are older record keys read when Name is absent; edits are always written to Name.
type FieldDescriptor struct {
	Name    string
	Label   string
	Kind    FieldKind
	Aliases []string
}

// Keys returns Name followed by its aliases, in lookup order
func (d FieldDescriptor) Keys() []string {
	return append([]string{d.Name}, d.Aliases...)
}

// OrderEditFields is the field list of the generic order document editor
var OrderEditFields = []FieldDescriptor{
	{Name: "numero", Label: "Numéro", Kind: FieldText},
	{Name: "client_name", Label: "Client", Kind: FieldText},
	{Name: "client_address", Label: "Adresse", Kind: FieldTextarea},
	{Name: "client_phone", Label: "Téléphone", Kind: FieldText},
	{Name: "prix_ht", Label: "Total HT", Kind: FieldCurrency, Aliases: []string{"total_ht"}},
	{Name: "remise", Label: "Remise", Kind: FieldCurrency, Aliases: []string{"discount"}},
	{Name: "tva", Label: "TVA", Kind: FieldCurrency},
	{Name: "timbre", Label: "Timbre fiscal", Kind: FieldCurrency},
	{Name: "prix_ttc", Label: "Total TTC", Kind: FieldCurrency, Aliases: []string{"total"}},
	{Name: "payment_method", Label: "Mode de paiement", Kind: FieldText, Aliases: []string{"mode_paiement", "paymentMethod"}},
	{Name: "delivery_method", Label: "Mode de livraison", Kind: FieldText, Aliases: []string{"mode_livraison", "deliveryMethod"}},
	{Name: "historique", Label: "Historique / note", Kind: FieldTextarea, Aliases: []string{"note"}},
}

// OrderEditField returns the editor descriptor named name
func OrderEditField(name string) (FieldDescriptor, bool) {
	for _, field := range OrderEditFields {
		if field.Name == name {
			return field, true
		}
	}
	return FieldDescriptor{}, false
}

// OrderFieldKeys returns the lookup keys of the editor field name, or name alone
func OrderFieldKeys(name string) []string {
	if field, ok := OrderEditField(name); ok {
		return field.Keys()
	}
	return []string{name}
}

// ParseValue converts a submitted form value to the type stored on the record.
// Empty amounts read as zero; anything else that is not a number is rejected.
func (d FieldDescriptor) ParseValue(raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	switch d.Kind {
	case FieldCurrency, FieldNumber:
		if raw == "" {
			return float64(0), nil
		}
		if !utils.IsNumeric(raw) {
			return nil, fmt.Errorf("%s : montant invalide %q", d.Label, raw)
		}
		if d.Kind == FieldCurrency {
			return utils.RoundAmount(utils.ToFloat(raw), utils.InputDecimals), nil
		}
		return utils.ToFloat(raw), nil
	case FieldText, FieldTextarea:
		return raw, nil
	}
	return raw, nil
}

// FieldValue is a descriptor paired with its current display value
type FieldValue struct {
	FieldDescriptor
	Value string
}

// EditForm is the view model of the order editor
type EditForm struct {
	OrderID string
	Numero  string
	Fields  []FieldValue
	Saved   bool
	Error   string
}
