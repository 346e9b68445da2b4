package domain

// TestCase is one oracle entry: a Singlish input and the exact Sinhala
// rendering the service is expected to show for it.
type TestCase struct {
	Label    string `yaml:"label" json:"label"`
	Input    string `yaml:"input" json:"input"`
	Expected string `yaml:"expected" json:"expected"`
}
