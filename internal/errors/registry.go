package errors

import "sort"

// Template defines a registered error type.
type Template struct {
	Category Category
	Message  string
	Detail   string
}

var registry = map[string]Template{
	"E001": {
		Category: CategoryRuntime,
		Message:  "Metadata context provided twice",
		Detail:   "The head metadata registry was installed a second time for the same render tree. Install it once, in the root component.",
	},
	"E002": {
		Category: CategoryRouting,
		Message:  "Route can never match",
		Detail:   "An earlier route matches every path this route would match. Routes are tried in declaration order.",
	},
	"E003": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "The configuration file or environment contains a value that cannot be used.",
	},
	"E004": {
		Category: CategoryAssets,
		Message:  "Asset not found",
		Detail:   "The requested asset does not exist in the configured asset store.",
	},
	"E005": {
		Category: CategoryServer,
		Message:  "Server failed to listen",
		Detail:   "The HTTP server could not bind its address. Another process may be using the port.",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}

// Codes returns every registered code in order.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
