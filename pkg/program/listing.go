package program

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ListingEntry is the serialisable view of one instruction.
type ListingEntry struct {
	Index   int      `yaml:"index"`
	Line    int      `yaml:"line"`
	Command string   `yaml:"command"`
	Args    []string `yaml:"args,omitempty"`
	Execute bool     `yaml:"execute"`
}

// Listing returns the program's instructions in order, without the sentinel.
func (p *Program) Listing() []ListingEntry {
	entries := make([]ListingEntry, 0, p.Len())
	for i := 0; i < p.Len(); i++ {
		ins := p.At(i)
		entries = append(entries, ListingEntry{
			Index:   i,
			Line:    ins.Line,
			Command: ins.Command.String(),
			Args:    ins.Args,
			Execute: ins.Execute,
		})
	}
	return entries
}

// WriteYAML writes the listing as a YAML document.
func (p *Program) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	doc := struct {
		Instructions []ListingEntry `yaml:"instructions"`
	}{Instructions: p.Listing()}

	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode program listing: %w", err)
	}
	return enc.Close()
}
