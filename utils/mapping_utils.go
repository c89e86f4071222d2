package utils

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MapPaymentMethodToLabel maps a backend payment method code to its French label
// Input is normalized to lowercase before mapping
func MapPaymentMethodToLabel(code string) string {
	codeLower := strings.ToLower(strings.TrimSpace(code))
	if codeLower == "" {
		return EmptyValue
	}

	paymentMap := map[string]string{
		"cash":      "Espèces",
		"especes":   "Espèces",
		"espèces":   "Espèces",
		"card":      "Carte bancaire",
		"carte":     "Carte bancaire",
		"cheque":    "Chèque",
		"chèque":    "Chèque",
		"transfer":  "Virement bancaire",
		"virement":  "Virement bancaire",
		"cod":       "Paiement à la livraison",
		"livraison": "Paiement à la livraison",
		"konnect":   "Paiement en ligne",
		"online":    "Paiement en ligne",
		"traite":    "Traite",
		"credit":    "Crédit",
		"mixed":     "Paiement mixte",
	}

	if label, exists := paymentMap[codeLower]; exists {
		return label
	}

	// If not found, return the input as typed
	return strings.TrimSpace(code)
}

// MapDeliveryMethodToLabel maps a backend delivery mode code to its French label
func MapDeliveryMethodToLabel(code string) string {
	codeLower := strings.ToLower(strings.TrimSpace(code))
	if codeLower == "" {
		return EmptyValue
	}

	deliveryMap := map[string]string{
		"pickup":   "Retrait en boutique",
		"retrait":  "Retrait en boutique",
		"store":    "Retrait en boutique",
		"home":     "Livraison à domicile",
		"domicile": "Livraison à domicile",
		"express":  "Livraison express",
		"relay":    "Point relais",
		"courier":  "Société de livraison",
	}

	if label, exists := deliveryMap[codeLower]; exists {
		return label
	}
	return strings.TrimSpace(code)
}

// MapStatusToLabel maps an order status code to its French label
func MapStatusToLabel(code string) string {
	codeLower := strings.ToLower(strings.TrimSpace(code))
	if codeLower == "" {
		return EmptyValue
	}

	statusMap := map[string]string{
		"pending":   "En attente",
		"confirmed": "Confirmée",
		"shipped":   "Expédiée",
		"delivered": "Livrée",
		"paid":      "Payée",
		"canceled":  "Annulée",
		"cancelled": "Annulée",
		"returned":  "Retournée",
	}

	if label, exists := statusMap[codeLower]; exists {
		return label
	}
	return strings.TrimSpace(code)
}

// CapitalizeName title-cases a person or company name for printing ("ben salah" -> "Ben Salah")
func CapitalizeName(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return EmptyValue
	}
	// a Caser keeps state between calls, so one per call
	return cases.Title(language.French).String(s)
}
