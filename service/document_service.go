package service

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"time"

	"boutique-backoffice/models"
	"boutique-backoffice/shop"
	"boutique-backoffice/templates"
	"boutique-backoffice/utils"
)

// DocumentService turns order records into printable HTML documents
type DocumentService struct {
	profile  *shop.Profile
	qr       *QRService
	resolver *ImageResolver
	loc      *time.Location

	layouts map[models.DocumentVariant]*template.Template
	pages   *template.Template
}

// NewDocumentService parses the embedded layouts once
func NewDocumentService(profile *shop.Profile, qr *QRService, resolver *ImageResolver, loc *time.Location) (*DocumentService, error) {
	if profile == nil {
		profile = shop.DefaultProfile()
	}
	if loc == nil {
		loc = time.Local
	}

	layouts := make(map[models.DocumentVariant]*template.Template, len(models.AllDocumentVariants()))
	for _, variant := range models.AllDocumentVariants() {
		tmpl, err := template.New(variant.Key()).ParseFS(templates.FS,
			"documents/layout.html",
			"documents/partials.html",
			"documents/"+variant.Key()+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", variant.Key(), err)
		}
		layouts[variant] = tmpl
	}

	pages, err := template.New("pages").ParseFS(templates.FS, "documents/not_found.html", "documents/edit.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}

	return &DocumentService{
		profile:  profile,
		qr:       qr,
		resolver: resolver,
		loc:      loc,
		layouts:  layouts,
		pages:    pages,
	}, nil
}

// BuildView maps an order onto the display model of variant.
// Missing fields render as placeholders; totals come from the record as stored.
func (s *DocumentService) BuildView(order models.Order, variant models.DocumentVariant, opts models.RenderOptions) models.DocumentView {
	view := models.DocumentView{
		Variant:       variant,
		IsTicket:      variant == models.TicketCaisse,
		Title:         variant.Title(),
		OrderID:       order.ID(),
		Numero:        orEmpty(order.Numero()),
		Date:          utils.EmptyValue,
		Time:          utils.EmptyValue,
		Status:        utils.MapStatusToLabel(order.String("status", "statut")),
		Client:        s.clientParty(order),
		Shop:          s.shopParty(),
		Items:         lineViews(order.Items()),
		EmptyMessage:  variant.EmptyItemsMessage(),
		ShowPrices:    variant.ShowsPrices(),
		Totals:        totalsView(order),
		Currency:      utils.CurrencyLabel,
		PaymentMethod: utils.MapPaymentMethodToLabel(order.String(models.OrderFieldKeys("payment_method")...)),
		DeliveryMode:  utils.MapDeliveryMethodToLabel(order.String(models.OrderFieldKeys("delivery_method")...)),
		Note:          order.String(models.OrderFieldKeys("historique")...),
		PaperWidthMM:  variant.PaperWidthMM(),
		Options:       opts,
	}

	if createdAt, ok := order.CreatedAt(s.loc); ok {
		view.Date = utils.FormatDateFR(createdAt, s.loc)
		view.Time = utils.FormatTimeFR(createdAt, s.loc)
	}

	switch variant {
	case models.TicketCaisse:
		if s.qr != nil {
			view.Code = s.qr.TicketCode(order.Numero())
		}
		view.FooterNote = s.profile.TicketFooter
	case models.Devis:
		view.ValidityDays = s.profile.QuoteValidityDays
	case models.BonCommande, models.BonLivraison, models.FactureClient, models.FactureBoutique:
	}

	return view
}

// Render writes the HTML document for view
func (s *DocumentService) Render(w io.Writer, view models.DocumentView) error {
	tmpl, ok := s.layouts[view.Variant]
	if !ok {
		tmpl = s.layouts[models.DefaultDocumentVariant]
	}

	// buffer so a failing template never leaves a half-written page
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", view); err != nil {
		return fmt.Errorf("failed to execute %s template: %w", view.Variant.Key(), err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// RenderNotFound writes the terminal "Commande introuvable" page
func (s *DocumentService) RenderNotFound(w io.Writer, variant models.DocumentVariant) error {
	var buf bytes.Buffer
	if err := s.pages.ExecuteTemplate(&buf, "not_found", variant); err != nil {
		return fmt.Errorf("failed to execute not found template: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// BuildEditForm fills one input per editable order field
func (s *DocumentService) BuildEditForm(order models.Order) models.EditForm {
	form := models.EditForm{
		OrderID: order.ID(),
		Numero:  orEmpty(order.Numero()),
		Fields:  make([]models.FieldValue, 0, len(models.OrderEditFields)),
	}
	for _, field := range models.OrderEditFields {
		value := editValue(order, field)
		switch field.Kind {
		case models.FieldCurrency:
			value = utils.FormatInput(order.Number(field.Keys()...))
		case models.FieldNumber:
			if utils.IsNumeric(order.Raw(field.Name)) {
				value = utils.FormatQuantity(order.Number(field.Keys()...))
			}
		case models.FieldText, models.FieldTextarea:
		}
		form.Fields = append(form.Fields, models.FieldValue{FieldDescriptor: field, Value: value})
	}
	return form
}

// RenderEditor writes the order edit form
func (s *DocumentService) RenderEditor(w io.Writer, form models.EditForm) error {
	var buf bytes.Buffer
	if err := s.pages.ExecuteTemplate(&buf, "edit", form); err != nil {
		return fmt.Errorf("failed to execute edit template: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// editValue reads a text field, following the aliases the document accessors accept
func editValue(order models.Order, field models.FieldDescriptor) string {
	switch field.Name {
	case "client_name":
		return order.ClientName()
	case "client_address":
		return order.ClientAddress()
	case "client_phone":
		return order.ClientPhone()
	}
	return order.String(field.Keys()...)
}

func (s *DocumentService) shopParty() models.PartyView {
	party := models.PartyView{
		Name:    s.profile.Name,
		Address: s.profile.Address,
		Phone:   s.profile.Phone,
		Email:   s.profile.Email,
		TaxID:   s.profile.TaxID,
		RIB:     s.profile.RIB,
	}
	if s.resolver != nil && s.profile.LogoURL != "" {
		logo := s.resolver.ResolveValue("coordinates", s.profile.LogoURL)
		party.Logo = &logo
	}
	return party
}

func (s *DocumentService) clientParty(order models.Order) models.PartyView {
	return models.PartyView{
		Name:    utils.CapitalizeName(order.ClientName()),
		Address: orEmpty(order.ClientAddress()),
		Phone:   orEmpty(order.ClientPhone()),
		Email:   order.String("client_email", "client.email", "email"),
	}
}

func lineViews(items []models.LineItem) []models.LineView {
	lines := make([]models.LineView, 0, len(items))
	for i, item := range items {
		lines = append(lines, models.LineView{
			Index:       i + 1,
			Designation: item.Designation,
			Reference:   item.Reference,
			Quantity:    utils.FormatQuantity(item.Quantity),
			UnitPrice:   utils.FormatAmount(item.UnitPrice, utils.DisplayDecimals),
			Total:       utils.FormatAmount(item.Total, utils.DisplayDecimals),
		})
	}
	return lines
}

func totalsView(order models.Order) models.TotalsView {
	remise := order.Number(models.OrderFieldKeys("remise")...)
	return models.TotalsView{
		HT:        utils.FormatAmount(order.Number(models.OrderFieldKeys("prix_ht")...), utils.DisplayDecimals),
		TVA:       utils.FormatAmount(order.Number(models.OrderFieldKeys("tva")...), utils.DisplayDecimals),
		Timbre:    utils.FormatAmount(order.Number(models.OrderFieldKeys("timbre")...), utils.DisplayDecimals),
		Remise:    utils.FormatAmount(remise, utils.DisplayDecimals),
		TTC:       utils.FormatAmount(order.Number(models.OrderFieldKeys("prix_ttc")...), utils.DisplayDecimals),
		HasRemise: remise != 0,
	}
}

func orEmpty(s string) string {
	if s == "" {
		return utils.EmptyValue
	}
	return s
}
