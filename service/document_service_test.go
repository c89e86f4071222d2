package service

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boutique-backoffice/models"
	"boutique-backoffice/shop"
)

func newTestDocumentService(t *testing.T) *DocumentService {
	t.Helper()
	profile := &shop.Profile{
		Name:              "Boutique Jasmin",
		Address:           "12 rue de Marseille, Tunis",
		TaxID:             "1234567/A/M/000",
		RIB:               "08 006 0123456789012 34",
		LogoURL:           "logo.png",
		TicketFooter:      "Merci de votre visite !",
		QuoteValidityDays: 15,
	}
	loc, err := time.LoadLocation("Africa/Tunis")
	require.NoError(t, err)
	s, err := NewDocumentService(profile, NewQRService("https://shop.example.tn/verify"), NewImageResolver(""), loc)
	require.NoError(t, err)
	return s
}

func decodeOrder(t *testing.T, payload string) models.Order {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(payload))
	dec.UseNumber()
	var order models.Order
	require.NoError(t, dec.Decode(&order))
	return order
}

func render(t *testing.T, s *DocumentService, order models.Order, variant models.DocumentVariant, opts models.RenderOptions) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, s.Render(&buf, s.BuildView(order, variant, opts)))
	return buf.String()
}

func TestRenderEmptyItemsAllVariants(t *testing.T) {
	s := newTestDocumentService(t)
	order := decodeOrder(t, `{"id": 7, "numero": "CMD-7", "items": []}`)

	expected := map[models.DocumentVariant]string{
		models.TicketCaisse:    "Aucun article",
		models.BonCommande:     "Aucun produit dans cette commande",
		models.BonLivraison:    "Aucun article à livrer",
		models.Devis:           "Aucune ligne dans ce devis",
		models.FactureClient:   "Aucun produit facturé",
		models.FactureBoutique: "Aucun produit facturé",
	}
	require.Len(t, expected, len(models.AllDocumentVariants()))

	for variant, message := range expected {
		t.Run(variant.Key(), func(t *testing.T) {
			html := render(t, s, order, variant, models.RenderOptions{})
			assert.Contains(t, html, message)
			assert.Contains(t, html, `data-document="`+variant.Key()+`"`)
		})
	}
}

func TestRenderMissingItemListKey(t *testing.T) {
	s := newTestDocumentService(t)
	order := decodeOrder(t, `{"id": 8, "items": "not-a-list"}`)

	html := render(t, s, order, models.BonCommande, models.RenderOptions{})
	assert.Contains(t, html, "Aucun produit dans cette commande")
}

func TestTicketTotalUsesStoredValue(t *testing.T) {
	s := newTestDocumentService(t)
	order := decodeOrder(t, `{
		"id": 42, "numero": "CMD-42",
		"items": [{"designation": "Savon", "quantity": 2, "unit_price": 4.5}],
		"prix_ttc": 19.999
	}`)

	view := s.BuildView(order, models.TicketCaisse, models.RenderOptions{})
	assert.Equal(t, "20.00", view.Totals.TTC)

	html := render(t, s, order, models.TicketCaisse, models.RenderOptions{})
	assert.Contains(t, html, `<strong class="ticket-total">20.00 DT</strong>`)

	form := s.BuildEditForm(order)
	assert.Equal(t, "19.999", fieldValue(t, form, "prix_ttc"))
}

func TestTicketTotalFallsBackToTotal(t *testing.T) {
	s := newTestDocumentService(t)
	order := decodeOrder(t, `{"id": 1, "total": "12,5"}`)

	view := s.BuildView(order, models.TicketCaisse, models.RenderOptions{})
	assert.Equal(t, "12.50", view.Totals.TTC)
}

func TestTicketQRCode(t *testing.T) {
	s := newTestDocumentService(t)

	view := s.BuildView(decodeOrder(t, `{"id": 42, "numero": "CMD-42"}`), models.TicketCaisse, models.RenderOptions{})
	require.NotNil(t, view.Code)
	assert.Contains(t, view.Code.Payload, "CMD-42")
	assert.NotEmpty(t, view.Code.DataURI)

	missing := s.BuildView(decodeOrder(t, `{"id": 43}`), models.TicketCaisse, models.RenderOptions{})
	require.NotNil(t, missing.Code)
	assert.Equal(t, "https://shop.example.tn/verify?numero=", missing.Code.Payload)

	html := render(t, s, decodeOrder(t, `{"id": 42, "numero": "CMD-42"}`), models.TicketCaisse, models.RenderOptions{})
	assert.Contains(t, html, `src="data:image/png;base64,`)
}

func TestOnlyTicketCarriesQRCode(t *testing.T) {
	s := newTestDocumentService(t)
	order := decodeOrder(t, `{"id": 42, "numero": "CMD-42"}`)

	for _, variant := range models.AllDocumentVariants() {
		view := s.BuildView(order, variant, models.RenderOptions{})
		assert.Equal(t, variant == models.TicketCaisse, view.Code != nil, variant.Key())
	}
}

func TestBuildViewFieldMapping(t *testing.T) {
	s := newTestDocumentService(t)
	order := decodeOrder(t, `{
		"id": "A-9", "numero": "CMD-9", "created_at": "2024-03-05T09:07:00Z",
		"client": {"name": "amira ben salah", "phone": "+216 20 000 000"},
		"cart": [{"name": "Bougie", "qty": 3, "price": "2.5"}, "ignored"],
		"prix_ht": 7.563, "tva": 1.437, "timbre": 1, "remise": 0.5, "prix_ttc": 9.5,
		"payment_method": "cash", "delivery_method": "home", "historique": "Livrer après 18h"
	}`)

	view := s.BuildView(order, models.FactureClient, models.RenderOptions{})
	assert.Equal(t, "A-9", view.OrderID)
	assert.Equal(t, "05/03/2024", view.Date)
	assert.Equal(t, "10:07", view.Time)
	assert.Equal(t, "Amira Ben Salah", view.Client.Name)
	assert.Equal(t, "+216 20 000 000", view.Client.Phone)
	assert.Equal(t, "—", view.Client.Address)
	require.Len(t, view.Items, 1)
	assert.Equal(t, models.LineView{Index: 1, Designation: "Bougie", Quantity: "3", UnitPrice: "2.50", Total: "7.50"}, view.Items[0])
	assert.Equal(t, models.TotalsView{HT: "7.56", TVA: "1.44", Timbre: "1.00", Remise: "0.50", TTC: "9.50", HasRemise: true}, view.Totals)
	assert.Equal(t, "Espèces", view.PaymentMethod)
	assert.Equal(t, "Livraison à domicile", view.DeliveryMode)
	assert.Equal(t, "Livrer après 18h", view.Note)
	assert.Equal(t, "DT", view.Currency)
	assert.Equal(t, float64(210), view.PaperWidthMM)
}

func TestBuildViewMissingFields(t *testing.T) {
	s := newTestDocumentService(t)
	view := s.BuildView(models.Order{}, models.BonCommande, models.RenderOptions{})

	assert.Equal(t, "—", view.Numero)
	assert.Equal(t, "—", view.Date)
	assert.Equal(t, "—", view.Client.Name)
	assert.Equal(t, "0.00", view.Totals.TTC)
	assert.False(t, view.Totals.HasRemise)
	assert.Empty(t, view.Items)
}

func TestBuildViewTotalsNotRecomputed(t *testing.T) {
	s := newTestDocumentService(t)
	order := decodeOrder(t, `{"items": [{"designation": "A", "quantity": 10, "unit_price": 10}], "prix_ttc": 1}`)

	view := s.BuildView(order, models.FactureBoutique, models.RenderOptions{})
	assert.Equal(t, "100.00", view.Items[0].Total)
	assert.Equal(t, "1.00", view.Totals.TTC)
}

func TestRenderPrintOptions(t *testing.T) {
	s := newTestDocumentService(t)
	order := decodeOrder(t, `{"id": 1}`)

	interactive := render(t, s, order, models.BonCommande, models.RenderOptions{})
	assert.Contains(t, interactive, "window.print()")
	assert.Contains(t, interactive, "Imprimer")
	assert.NotContains(t, interactive, "setTimeout")

	printing := render(t, s, order, models.BonCommande, models.RenderOptions{AutoPrint: true, HidePrintButton: true})
	assert.Contains(t, printing, "setTimeout(function () { window.print(); }, 500)")
	assert.NotContains(t, printing, "<button")
}

func TestRenderVariantSpecificContent(t *testing.T) {
	s := newTestDocumentService(t)
	order := decodeOrder(t, `{"id": 3, "numero": "CMD-3", "items": [{"designation": "Savon", "reference": "SV-1", "quantity": 2, "unit_price": 4.5}], "prix_ttc": 9}`)

	delivery := render(t, s, order, models.BonLivraison, models.RenderOptions{})
	assert.Contains(t, delivery, "Signature du livreur")
	assert.Contains(t, delivery, "SV-1")
	assert.NotContains(t, delivery, "4.50")

	quote := render(t, s, order, models.Devis, models.RenderOptions{})
	assert.Contains(t, quote, "Devis valable 15 jours")

	shopInvoice := render(t, s, order, models.FactureBoutique, models.RenderOptions{})
	assert.Contains(t, shopInvoice, "08 006 0123456789012 34")
	assert.Contains(t, shopInvoice, "MF : 1234567/A/M/000")

	ticket := render(t, s, order, models.TicketCaisse, models.RenderOptions{})
	assert.Contains(t, ticket, "80mm auto")
	assert.Contains(t, ticket, "Merci de votre visite !")
}

func TestRenderShopLogoFallbackChain(t *testing.T) {
	s := newTestDocumentService(t)

	html := render(t, s, decodeOrder(t, `{"id": 1}`), models.BonCommande, models.RenderOptions{})
	assert.Contains(t, html, `src="/images/coordinates/logo.png"`)
	assert.Contains(t, html, `data-fallback="/uploads/logo.png"`)
	assert.Contains(t, html, `data-placeholder="/images/placeholder.png"`)
}

func TestRenderEscapesOrderData(t *testing.T) {
	s := newTestDocumentService(t)
	order := decodeOrder(t, `{"id": 1, "items": [{"designation": "<script>alert(1)</script>"}]}`)

	html := render(t, s, order, models.BonCommande, models.RenderOptions{})
	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;alert(1)&lt;/script&gt;")
}

func TestRenderNotFound(t *testing.T) {
	s := newTestDocumentService(t)
	var buf bytes.Buffer

	require.NoError(t, s.RenderNotFound(&buf, models.Devis))
	assert.Contains(t, buf.String(), "Commande introuvable")
	assert.Contains(t, buf.String(), `data-document="devis"`)
}

func TestRenderEditor(t *testing.T) {
	s := newTestDocumentService(t)
	order := decodeOrder(t, `{"id": 42, "numero": "CMD-42", "client": {"name": "Amira"}, "prix_ttc": 19.999, "historique": "appel client"}`)

	form := s.BuildEditForm(order)
	require.Len(t, form.Fields, len(models.OrderEditFields))
	assert.Equal(t, "Amira", fieldValue(t, form, "client_name"))
	assert.Equal(t, "0.000", fieldValue(t, form, "remise"))

	var buf bytes.Buffer
	require.NoError(t, s.RenderEditor(&buf, form))
	html := buf.String()
	assert.Contains(t, html, `action="/orders/42"`)
	assert.Contains(t, html, `name="prix_ttc" value="19.999"`)
	assert.Contains(t, html, `<textarea id="field-historique" name="historique" rows="3">appel client</textarea>`)
}

func fieldValue(t *testing.T, form models.EditForm, name string) string {
	t.Helper()
	for _, f := range form.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	t.Fatalf("field %s not in form", name)
	return ""
}

func TestEditFormReadsAliasedAmounts(t *testing.T) {
	s := newTestDocumentService(t)
	order := decodeOrder(t, `{"id": 7, "total": 50, "discount": 5, "total_ht": 45, "note": "livrer le matin"}`)

	form := s.BuildEditForm(order)
	view := s.BuildView(order, models.FactureClient, models.RenderOptions{})

	assert.Equal(t, "50.000", fieldValue(t, form, "prix_ttc"))
	assert.Equal(t, "5.000", fieldValue(t, form, "remise"))
	assert.Equal(t, "45.000", fieldValue(t, form, "prix_ht"))
	assert.Equal(t, "livrer le matin", fieldValue(t, form, "historique"))
	assert.Equal(t, "50.00", view.Totals.TTC)
	assert.Equal(t, "5.00", view.Totals.Remise)
}
