// Package template provides flat {{placeholder}} substitution for SMS
// messages and per-shop template storage with built-in defaults.
package template

import "strings"

// Built-in templates used when a shop has not customized its messages.
const (
	DefaultOrderConfirmation = "Hi {{customer_name}}, your order #{{order_number}} has been confirmed. Total: {{total_price}}. Thank you!"
	DefaultFulfillment       = "Hi {{customer_name}}, your order #{{order_number}} has been shipped and will arrive soon!"
)

// ShopTemplates is the template pair stored for one shop.
type ShopTemplates struct {
	OrderConfirmation string `json:"order_confirmation"`
	Fulfillment       string `json:"fulfillment"`
}

// Defaults returns the built-in template pair.
func Defaults() ShopTemplates {
	return ShopTemplates{
		OrderConfirmation: DefaultOrderConfirmation,
		Fulfillment:       DefaultFulfillment,
	}
}

// Render replaces every {{key}} occurrence in tpl with the matching context
// value, via plain substring substitution. Placeholders with no context entry
// are left verbatim; context keys with no placeholder are ignored. There is
// no recursion, escaping, or conditional logic.
func Render(tpl string, ctx map[string]string) string {
	out := tpl
	for key, value := range ctx {
		out = strings.ReplaceAll(out, "{{"+key+"}}", value)
	}
	return out
}
