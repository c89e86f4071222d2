package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDocumentVariantRoundTrip(t *testing.T) {
	for _, v := range AllDocumentVariants() {
		assert.Equal(t, v, ParseDocumentVariant(v.Key()), v.Key())
		assert.NotEmpty(t, v.Title())
		assert.NotEmpty(t, v.EmptyItemsMessage())
	}
	assert.Len(t, AllDocumentVariants(), 6)
}

func TestParseDocumentVariantDefault(t *testing.T) {
	assert.Equal(t, BonCommande, ParseDocumentVariant(""))
	assert.Equal(t, BonCommande, ParseDocumentVariant("facture_pro_forma"))
	assert.Equal(t, TicketCaisse, ParseDocumentVariant(" Ticket-Caisse "))
}

func TestVariantLayoutProperties(t *testing.T) {
	assert.Equal(t, 80.0, TicketCaisse.PaperWidthMM())
	assert.Equal(t, 210.0, FactureBoutique.PaperWidthMM())
	assert.False(t, BonLivraison.ShowsPrices())
	assert.True(t, Devis.ShowsPrices())
	assert.Equal(t, "bon_commande", DocumentVariant(99).Key())
}
