package analysis

// FieldType of a schema field.
type FieldType string

const (
	FieldString      FieldType = "string"
	FieldStringArray FieldType = "string_array"
)

// Field is one property of the declared response schema.
type Field struct {
	Name        string
	Type        FieldType
	Required    bool
	Description string
}

// Schema describes the JSON object the analyzer must return.
type Schema struct {
	Fields []Field
}

// RequiredNames lists required field names in declaration order.
func (s Schema) RequiredNames() []string {
	var out []string
	for _, f := range s.Fields {
		if f.Required {
			out = append(out, f.Name)
		}
	}
	return out
}

// VideoSchema is the contract for a video-link analysis response.
var VideoSchema = Schema{Fields: []Field{
	{Name: "platform", Type: FieldString, Required: true, Description: "One of TikTok, Instagram, YouTube, Twitter"},
	{Name: "title", Type: FieldString, Required: true, Description: "Plausible video title"},
	{Name: "summary", Type: FieldString, Required: true, Description: "Short summary of the likely content"},
	{Name: "bestQuality", Type: FieldString, Description: "Best available quality, e.g. 1080p"},
	{Name: "downloadInstructions", Type: FieldString, Required: true, Description: "Human-readable download guidance"},
	{Name: "tags", Type: FieldStringArray, Description: "Keywords describing the video"},
	{Name: "downloadLink", Type: FieldString, Description: "Best-effort direct link, may be omitted"},
	{Name: "suggestedFileName", Type: FieldString, Description: "File name suggestion without extension"},
}}
