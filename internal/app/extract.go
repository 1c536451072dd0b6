package app

import (
	"strconv"

	"github.com/beevik/etree"

	"avail_quote/internal/domain"
)

// rawRequest holds the extracted fields before the validation stages run.
// Dates stay as strings until the date validator parses them.
type rawRequest struct {
	language     string
	optionsQuota int
	currency     string
	nationality  string
	startDate    string
	endDate      string
}

// credentialAttrs must all be present on the Parameter element. Order matters:
// the first absent attribute is the one named in the error.
var credentialAttrs = []string{"password", "username", "CompanyID"}

// extractFields reads the scalar fields at their fixed paths, applying
// defaults for the optional ones, and verifies the credential block. Pure
// read; no side effects.
func (p *Processor) extractFields(doc *etree.Document) (rawRequest, error) {
	raw := rawRequest{
		language:     findText(doc, "//source/languageCode", p.ref.DefaultLanguage),
		currency:     findText(doc, "//Currency", p.ref.DefaultCurrency),
		nationality:  findText(doc, "//Nationality", p.ref.DefaultNationality),
		optionsQuota: p.ref.DefaultOptionsQuota,
	}

	if s := findText(doc, "//optionsQuota", ""); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return rawRequest{}, domain.Errf(domain.KindInvalidValue, "optionsQuota",
				"optionsQuota must be an integer: %s", s)
		}
		raw.optionsQuota = n
	}

	var err error
	if raw.startDate, err = requireText(doc, "//StartDate", "StartDate"); err != nil {
		return rawRequest{}, err
	}
	if raw.endDate, err = requireText(doc, "//EndDate", "EndDate"); err != nil {
		return rawRequest{}, err
	}

	param := doc.FindElement("//Configuration/Parameters/Parameter")
	if param == nil {
		return rawRequest{}, domain.Errf(domain.KindMissingField, "Parameter",
			"Missing required <Parameter> element")
	}
	for _, attr := range credentialAttrs {
		if param.SelectAttr(attr) == nil {
			return rawRequest{}, domain.Errf(domain.KindMissingField, attr,
				"Missing required parameter: %s", attr)
		}
	}

	return raw, nil
}

// findText returns the text of the first element at path, or def when absent.
func findText(doc *etree.Document, path, def string) string {
	if el := doc.FindElement(path); el != nil {
		return el.Text()
	}
	return def
}

func requireText(doc *etree.Document, path, field string) (string, error) {
	el := doc.FindElement(path)
	if el == nil || el.Text() == "" {
		return "", domain.Errf(domain.KindMissingField, field,
			"Missing required <%s> element", field)
	}
	return el.Text(), nil
}
