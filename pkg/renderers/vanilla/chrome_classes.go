package vanilla

// ChromeClass is a typed identifier for the semantic CSS classes emitted by
// the form template.
type ChromeClass string

const (
	ClassPage    ChromeClass = "coagen-page"
	ClassForm    ChromeClass = "coagen-form"
	ClassSection ChromeClass = "coagen-section"
	ClassField   ChromeClass = "coagen-field"
	ClassActions ChromeClass = "coagen-actions"
	ClassStatus  ChromeClass = "coagen-status"
)

func chromeClasses() map[string]string {
	return map[string]string{
		"page":    string(ClassPage),
		"form":    string(ClassForm),
		"section": string(ClassSection),
		"field":   string(ClassField),
		"actions": string(ClassActions),
		"status":  string(ClassStatus),
	}
}
