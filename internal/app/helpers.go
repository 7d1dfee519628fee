package app

import (
	"net/http"
	"sort"
)

// RequireMethod validates that the request uses the specified HTTP method
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// sortedRefs returns the keys of a per-source error map in stable order.
func sortedRefs(failed map[string]error) []string {
	refs := make([]string, 0, len(failed))
	for ref := range failed {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	return refs
}
