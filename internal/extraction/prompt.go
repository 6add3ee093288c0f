package extraction

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ImageField is the field name that triggers image URL assignment
const ImageField = "image_url"

// BuildPrompt builds the extraction prompt for one chunk. The remaining image
// URLs are embedded only when the image field was requested.
func BuildPrompt(fields []string, remainingImages []string, chunk string) string {
	var images string
	if hasField(fields, ImageField) {
		encoded, err := json.Marshal(remainingImages)
		if err != nil {
			encoded = []byte("[]")
		}
		images = fmt.Sprintf(`
If "%s" is requested, use the available image URLs in order:
%s
`, ImageField, encoded)
	}

	return fmt.Sprintf(`Extract the following fields from the provided text:
- %s
%s
Return ONLY a valid JSON object, no additional text or explanation:
{ "listings": [{ %s }] }

Text Content:
%s`, strings.Join(fields, ", "), images, exampleListing(fields), chunk)
}

// exampleListing renders the placeholder listing shown to the model
func exampleListing(fields []string) string {
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		name, _ := json.Marshal(field)
		placeholder := `"value"`
		if field == ImageField {
			placeholder = `"some_image_url"`
		}
		parts = append(parts, fmt.Sprintf("%s: %s", name, placeholder))
	}
	return strings.Join(parts, ", ")
}

func hasField(fields []string, name string) bool {
	for _, field := range fields {
		if field == name {
			return true
		}
	}
	return false
}
