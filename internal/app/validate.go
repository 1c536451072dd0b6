package app

import (
	"time"

	"avail_quote/internal/domain"
)

const dateLayout = "02/01/2006"

// validateBasicFields checks set membership and the quota ceiling. Check order
// is fixed (language, currency, nationality, quota) and the first failure
// wins; errors are never accumulated.
func (p *Processor) validateBasicFields(raw rawRequest) error {
	if !p.ref.ValidLanguage(raw.language) {
		return domain.Errf(domain.KindInvalidValue, "languageCode", "Invalid language: %s", raw.language)
	}
	if !p.ref.ValidCurrency(raw.currency) {
		return domain.Errf(domain.KindInvalidValue, "Currency", "Invalid currency: %s", raw.currency)
	}
	if !p.ref.ValidNationality(raw.nationality) {
		return domain.Errf(domain.KindInvalidValue, "Nationality", "Invalid nationality: %s", raw.nationality)
	}
	if raw.optionsQuota > p.ref.MaxOptionsQuota {
		return domain.Errf(domain.KindInvalidValue, "optionsQuota",
			"optionsQuota cannot be greater than %d", p.ref.MaxOptionsQuota)
	}
	return nil
}

// validateDates parses both dates and enforces the lead-time and stay-length
// windows, in that order. Comparisons use calendar dates only: a start date
// exactly MinLeadTimeDays from today is accepted.
func (p *Processor) validateDates(startStr, endStr string) (start, end time.Time, err error) {
	if start, err = parseDate(startStr, "StartDate"); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end, err = parseDate(endStr, "EndDate"); err != nil {
		return time.Time{}, time.Time{}, err
	}

	today := truncateToDay(p.now())
	if start.Before(today.AddDate(0, 0, p.ref.MinLeadTimeDays)) {
		return time.Time{}, time.Time{}, domain.Errf(domain.KindDateWindow, "StartDate",
			"StartDate must be at least %d days from today", p.ref.MinLeadTimeDays)
	}
	if nights := int(end.Sub(start).Hours() / 24); nights < p.ref.MinStayNights {
		return time.Time{}, time.Time{}, domain.Errf(domain.KindDateWindow, "EndDate",
			"Stay duration must be at least %d nights", p.ref.MinStayNights)
	}
	return start, end, nil
}

func parseDate(s, field string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, domain.Errf(domain.KindStructural, field,
			"%s must match DD/MM/YYYY: %s", field, s)
	}
	return t, nil
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
