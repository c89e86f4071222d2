package models

import (
	"html/template"
	"strings"
)

// DocumentVariant is one of the six printable layouts derived from an order
type DocumentVariant int

const (
	TicketCaisse DocumentVariant = iota
	BonCommande
	BonLivraison
	Devis
	FactureClient
	FactureBoutique
)

// DefaultDocumentVariant is used when the requested type is unknown
const DefaultDocumentVariant = BonCommande

// AllDocumentVariants lists every variant in display order
func AllDocumentVariants() []DocumentVariant {
	return []DocumentVariant{TicketCaisse, BonCommande, BonLivraison, Devis, FactureClient, FactureBoutique}
}

// ParseDocumentVariant maps a query value ("ticket_caisse", "devis", …) to a variant.
// Unrecognized values fall back to the purchase order.
func ParseDocumentVariant(s string) DocumentVariant {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "-", "_")
	for _, v := range AllDocumentVariants() {
		if v.Key() == key {
			return v
		}
	}
	return DefaultDocumentVariant
}

// Key is the stable identifier used in URLs and template names
func (v DocumentVariant) Key() string {
	switch v {
	case TicketCaisse:
		return "ticket_caisse"
	case BonCommande:
		return "bon_commande"
	case BonLivraison:
		return "bon_livraison"
	case Devis:
		return "devis"
	case FactureClient:
		return "facture_client"
	case FactureBoutique:
		return "facture_boutique"
	}
	return DefaultDocumentVariant.Key()
}

func (v DocumentVariant) String() string { return v.Key() }

// Title is the heading printed on the document
func (v DocumentVariant) Title() string {
	switch v {
	case TicketCaisse:
		return "Ticket de caisse"
	case BonCommande:
		return "Bon de commande"
	case BonLivraison:
		return "Bon de livraison"
	case Devis:
		return "Devis"
	case FactureClient:
		return "Facture client"
	case FactureBoutique:
		return "Facture boutique"
	}
	return DefaultDocumentVariant.Title()
}

// EmptyItemsMessage is the row shown when the order has no line items
func (v DocumentVariant) EmptyItemsMessage() string {
	switch v {
	case TicketCaisse:
		return "Aucun article"
	case BonCommande:
		return "Aucun produit dans cette commande"
	case BonLivraison:
		return "Aucun article à livrer"
	case Devis:
		return "Aucune ligne dans ce devis"
	case FactureClient, FactureBoutique:
		return "Aucun produit facturé"
	}
	return DefaultDocumentVariant.EmptyItemsMessage()
}

// PaperWidthMM is the printable width: 80mm thermal roll for tickets, A4 otherwise
func (v DocumentVariant) PaperWidthMM() float64 {
	switch v {
	case TicketCaisse:
		return 80
	case BonCommande, BonLivraison, Devis, FactureClient, FactureBoutique:
		return 210
	}
	return 210
}

// ShowsPrices is false for the delivery note, which lists quantities only
func (v DocumentVariant) ShowsPrices() bool {
	switch v {
	case BonLivraison:
		return false
	case TicketCaisse, BonCommande, Devis, FactureClient, FactureBoutique:
		return true
	}
	return true
}

// RenderOptions are the presentation switches passed by the caller
type RenderOptions struct {
	AutoPrint       bool // open the print dialog once the page has settled
	HidePrintButton bool // pure-print context (iframe, PDF export)
}

// LineView is a line item with display-ready values
type LineView struct {
	Index       int
	Designation string
	Reference   string
	Quantity    string
	UnitPrice   string
	Total       string
}

// TotalsView holds the backend aggregates, formatted, never recomputed from lines
type TotalsView struct {
	HT     string
	TVA    string
	Timbre string
	Remise string
	TTC    string
	// HasRemise hides the discount row when it is zero
	HasRemise bool
}

// TicketCode is the scannable verification code printed on receipts
type TicketCode struct {
	Payload string
	DataURI template.URL // empty when the image could not be generated
}

// PartyView is a printed name/address block
type PartyView struct {
	Name    string
	Address string
	Phone   string
	Email   string
	TaxID   string
	RIB     string
	Logo    *ImageCandidates
}

// DocumentView is everything a layout template needs
type DocumentView struct {
	Variant       DocumentVariant
	IsTicket      bool
	Title         string
	OrderID       string
	Numero        string
	Date          string
	Time          string
	Status        string
	Client        PartyView
	Shop          PartyView
	Items         []LineView
	EmptyMessage  string
	ShowPrices    bool
	Totals        TotalsView
	Currency      string
	PaymentMethod string
	DeliveryMode  string
	Note          string
	Code          *TicketCode
	FooterNote    string
	ValidityDays  int
	PaperWidthMM  float64
	Options       RenderOptions
}
