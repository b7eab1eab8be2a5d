package i18n

var monthNames = map[string][12]string{
	"en": {"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
	"fr": {"janvier", "février", "mars", "avril", "mai", "juin", "juillet", "août", "septembre", "octobre", "novembre", "décembre"},
	"de": {"Januar", "Februar", "März", "April", "Mai", "Juni", "Juli", "August", "September", "Oktober", "November", "Dezember"},
	"ru": {"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь", "Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь"},
	"es": {"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
}

var monthShortNames = map[string][12]string{
	"en": {"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	"fr": {"janv.", "févr.", "mars", "avr.", "mai", "juin", "juil.", "août", "sept.", "oct.", "nov.", "déc."},
	"de": {"Jan", "Feb", "Mär", "Apr", "Mai", "Jun", "Jul", "Aug", "Sep", "Okt", "Nov", "Dez"},
	"ru": {"янв.", "февр.", "март", "апр.", "май", "июнь", "июль", "авг.", "сент.", "окт.", "нояб.", "дек."},
	"es": {"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sep", "oct", "nov", "dic"},
}

var translations = map[string]map[string]string{
	"en": {
		"required":                      "Required",
		"not_a_number":                  "Is not a number",
		"must_be_positive":              "Must be greater than 0",
		"must_not_be_negative":          "Must be greater than or equal to 0",
		"out_of_range":                  "Must be between 0 and 100",
		"taken":                         "Has already been taken",
		"inconsistent_status":           "Status can't be changed with the current balance",
		"label_invoice":                 "Invoice",
		"label_invoice_number":          "Number",
		"label_invoice_date":            "Invoice date",
		"label_invoice_due_date":        "Due date",
		"label_invoice_status":          "Status",
		"label_invoice_status_estimate": "Estimate",
		"label_invoice_status_draft":    "Draft",
		"label_invoice_status_sent":     "Sent",
		"label_invoice_status_paid":     "Paid",
		"label_invoice_status_canceled": "Canceled",
		"label_invoice_line":            "Description",
		"label_invoice_quantity":        "Quantity",
		"label_invoice_price":           "Price",
		"label_invoice_total":           "Total",
		"label_invoice_subtotal":        "Subtotal",
		"label_invoice_tax":             "Tax",
		"label_invoice_discount":        "Discount",
		"label_invoice_amount":          "Amount",
		"label_invoice_balance":         "Paid",
		"label_invoice_remaining":       "Balance due",
		"label_invoice_payments":        "Payments",
		"label_invoice_created":         "Invoice created",
		"label_invoice_comment_added":   "Invoice comment added",
		"label_invoice_payment_created": "Payment added",
		"label_invoice_bill_to":         "Bill to",
		"label_invoice_units":           "Units",
		"label_invoice_order_number":    "Order number",
	},
	"fr": {
		"required":                      "Requis",
		"not_a_number":                  "N'est pas un nombre",
		"must_be_positive":              "Doit être supérieur à 0",
		"must_not_be_negative":          "Doit être supérieur ou égal à 0",
		"out_of_range":                  "Doit être compris entre 0 et 100",
		"taken":                         "Est déjà utilisé",
		"inconsistent_status":           "Le statut ne peut pas être modifié avec ce solde",
		"label_invoice":                 "Facture",
		"label_invoice_number":          "Numéro",
		"label_invoice_date":            "Date de facture",
		"label_invoice_due_date":        "Échéance",
		"label_invoice_status":          "Statut",
		"label_invoice_status_estimate": "Devis",
		"label_invoice_status_draft":    "Brouillon",
		"label_invoice_status_sent":     "Envoyée",
		"label_invoice_status_paid":     "Payée",
		"label_invoice_status_canceled": "Annulée",
		"label_invoice_line":            "Désignation",
		"label_invoice_quantity":        "Quantité",
		"label_invoice_price":           "Prix",
		"label_invoice_total":           "Total",
		"label_invoice_subtotal":        "Sous-total",
		"label_invoice_tax":             "TVA",
		"label_invoice_discount":        "Remise",
		"label_invoice_amount":          "Montant",
		"label_invoice_balance":         "Payé",
		"label_invoice_remaining":       "Reste à payer",
		"label_invoice_payments":        "Paiements",
		"label_invoice_created":         "Facture créée",
		"label_invoice_comment_added":   "Commentaire ajouté à la facture",
		"label_invoice_payment_created": "Paiement ajouté",
		"label_invoice_bill_to":         "Facturé à",
		"label_invoice_units":           "Unités",
		"label_invoice_order_number":    "N° de commande",
	},
	"de": {
		"required":                      "Erforderlich",
		"not_a_number":                  "Ist keine Zahl",
		"label_invoice":                 "Rechnung",
		"label_invoice_status_estimate": "Angebot",
		"label_invoice_status_draft":    "Entwurf",
		"label_invoice_status_sent":     "Versendet",
		"label_invoice_status_paid":     "Bezahlt",
		"label_invoice_status_canceled": "Storniert",
		"label_invoice_subtotal":        "Zwischensumme",
		"label_invoice_tax":             "MwSt.",
		"label_invoice_discount":        "Rabatt",
		"label_invoice_amount":          "Betrag",
	},
	"ru": {
		"required":                      "Обязательно",
		"label_invoice":                 "Счёт",
		"label_invoice_status_estimate": "Смета",
		"label_invoice_status_draft":    "Черновик",
		"label_invoice_status_sent":     "Отправлен",
		"label_invoice_status_paid":     "Оплачен",
		"label_invoice_status_canceled": "Отменён",
		"label_invoice_amount":          "Сумма",
	},
	"es": {
		"required":                      "Obligatorio",
		"label_invoice":                 "Factura",
		"label_invoice_status_estimate": "Presupuesto",
		"label_invoice_status_draft":    "Borrador",
		"label_invoice_status_sent":     "Enviada",
		"label_invoice_status_paid":     "Pagada",
		"label_invoice_status_canceled": "Cancelada",
		"label_invoice_amount":          "Importe",
	},
}
