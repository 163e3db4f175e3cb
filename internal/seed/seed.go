// Package seed embeds the static lead list served by `sellerconsole serve`
// and used when no lead source is configured.
package seed

import (
	_ "embed"
)

//go:embed leads.json
var leadsJSON []byte

// LeadsJSON returns a copy of the embedded lead document.
func LeadsJSON() []byte {
	out := make([]byte, len(leadsJSON))
	copy(out, leadsJSON)
	return out
}
