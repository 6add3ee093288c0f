package extraction

import (
	"strings"

	"github.com/tidwall/gjson"
)

// RepairJSON salvages a JSON object from a model reply that may carry prose,
// code fences or truncation around it. Everything before the first "{" and
// after the last "}" is cut; a reply missing either brace gets one added. Only
// the outermost first/last brace pair is used, so several objects in one reply
// are not captured separately. ok is false when the result is not valid JSON.
func RepairJSON(text string) (gjson.Result, bool) {
	text = strings.TrimSpace(text)

	if !strings.HasPrefix(text, "{") {
		if i := strings.Index(text, "{"); i >= 0 {
			text = text[i+1:]
		}
		text = "{" + text
	}

	if !strings.HasSuffix(text, "}") {
		if i := strings.LastIndex(text, "}"); i >= 0 {
			text = text[:i]
		}
		text += "}"
	}

	if !gjson.Valid(text) {
		return gjson.Result{}, false
	}
	return gjson.Parse(text), true
}
