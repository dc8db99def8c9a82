// Package locale answers two questions for pages that render the timezone
// selector: which language tag is active, and which writing direction that
// language uses. It also bundles a small go-i18n translator for the selector
// strings.
package locale
