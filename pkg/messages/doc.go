// Package messages maps the stable message keys emitted by the decoder
// and its collaborators to localized, user-facing text.
//
// The catalogs are embedded YAML files, one per language, with flat
// key/text pairs. Lookup never fails: a missing key falls back to the
// default language and finally to the key itself, so an unlocalized key
// still surfaces instead of disappearing.
//
// # Usage
//
//	cat, err := messages.New()
//	if err != nil { ... }
//	text := cat.Get("pt", "dependencies_wrong_sum")
//
// Language matching uses golang.org/x/text/language, so "pt-BR" or
// "en-US" resolve to the closest available catalog.
package messages
