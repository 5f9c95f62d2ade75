package analysis

import (
	"fmt"
	"strings"

	domain "github.com/bryanwahyu/videomaster/internal/domain/analysis"
)

// SystemPrompt provides strict directions for JSON output. When inlineSchema
// is set the schema is spelled out in the text, for transports that cannot
// enforce it natively.
func SystemPrompt(schema domain.Schema, inlineSchema bool) string {
	var b strings.Builder
	b.WriteString(`You are an assistant that describes social media videos from their links. You must produce one valid JSON object only (no markdown, no commentary).

Requirements:
- Output must be a single JSON object.
- "platform" must be exactly one of: `)
	names := make([]string, 0, len(domain.Platforms))
	for _, p := range domain.Platforms {
		names = append(names, string(p))
	}
	b.WriteString(strings.Join(names, ", "))
	b.WriteString(`.
- "tags" is an array of short keywords without the leading #.
- Leave "downloadLink" out entirely unless you are confident it is a real direct link.
- Required fields: `)
	b.WriteString(strings.Join(schema.RequiredNames(), ", "))
	b.WriteString(".")

	if inlineSchema {
		b.WriteString("\n\nSchema (example with empty values):\n{\n")
		for i, f := range schema.Fields {
			val := `"<string>"`
			if f.Type == domain.FieldStringArray {
				val = `["<string>"]`
			}
			fmt.Fprintf(&b, "  %q: %s", f.Name, val)
			if i < len(schema.Fields)-1 {
				b.WriteString(",")
			}
			if !f.Required {
				b.WriteString(" // optional")
			}
			b.WriteString("\n")
		}
		b.WriteString("}")
	}
	return b.String()
}

// UserPrompt builds the instruction around the submitted URL. language is the
// English name of the language the download guidance must be written in.
func UserPrompt(videoURL, language string) string {
	return fmt.Sprintf(`Analyze this video URL: %s
1. Identify the social media platform.
2. Provide a plausible title, a short summary of what this video likely contains based on the URL structure or common trends, and a set of tags.
3. Provide instructions in %s on how to download from this platform without a watermark.
4. If you know a best-effort direct download link, include it as downloadLink.
Respond with the JSON object only.`, videoURL, language)
}
