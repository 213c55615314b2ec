package course

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Module is a candidate curriculum unit. Reference is its identity and must be
// unique within an extraction batch.
type Module struct {
	Reference   string `json:"reference" mapstructure:"reference"`
	Title       string `json:"title" mapstructure:"title"`
	Description string `json:"description" mapstructure:"description"`
}

type Modules struct {
	Items []*Module
}

func (m *Modules) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Items)
}

func (m *Modules) References() []string {
	refs := make([]string, 0, m.Len())
	for _, module := range m.Items {
		refs = append(refs, module.Reference)
	}
	return refs
}

func (m *Modules) FindByReference(reference string) *Module {
	for _, module := range m.Items {
		if module.Reference == reference {
			return module
		}
	}
	return nil
}

func (m *Modules) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "modules_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m.Items); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// DecodeModule narrows an untyped value into a validated Module. Unknown keys
// are ignored; string fields are trimmed before validation.
func DecodeModule(raw any) (*Module, error) {
	var module Module

	cfg := &mapstructure.DecoderConfig{
		Result:           &module,
		WeaklyTypedInput: true,
	}

	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, fmt.Errorf("building module decoder: %w", err)
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decoding module: %w", err)
	}

	module.Reference = strings.TrimSpace(module.Reference)
	module.Title = strings.TrimSpace(module.Title)
	module.Description = strings.TrimSpace(module.Description)

	if err := module.Validate(); err != nil {
		return nil, err
	}

	return &module, nil
}
