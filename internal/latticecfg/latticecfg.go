// Package latticecfg bootstraps an operator registry from a declarative YAML
// document, so embedders can keep their lattice declaration in a config file
// instead of Go source — the same role yaml.v3 plays for the teacher's own
// tool configuration.
package latticecfg

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/weft-lang/weft/internal/typeterm"
)

// Document is the top-level YAML shape:
//
//	basics:
//	  - name: Any
//	  - name: Ord
//	    supertype: Any
//	  - name: Bool
//	    supertype: Ord
//	compounds:
//	  - name: Set
//	    variance: [covariant]
type Document struct {
	Basics    []BasicSpec    `yaml:"basics"`
	Compounds []CompoundSpec `yaml:"compounds"`
}

// BasicSpec declares one nullary operator and its optional direct
// supertype, which must itself already be declared earlier in the document.
type BasicSpec struct {
	Name      string `yaml:"name"`
	Supertype string `yaml:"supertype,omitempty"`
}

// CompoundSpec declares one compound operator and its per-parameter
// variance, given as lowercase words.
type CompoundSpec struct {
	Name     string   `yaml:"name"`
	Variance []string `yaml:"variance"`
}

// Load parses a YAML document and bootstraps a fresh Registry from it.
// Basics must be listed in an order where each supertype reference names an
// operator already declared earlier in the list.
func Load(data []byte) (*typeterm.Registry, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("latticecfg: parsing document: %w", err)
	}
	return Build(doc)
}

// Build constructs a Registry from an already-parsed Document.
func Build(doc Document) (*typeterm.Registry, error) {
	reg := typeterm.NewRegistry()

	for _, b := range doc.Basics {
		var super *typeterm.Operator
		if b.Supertype != "" {
			var ok bool
			super, ok = reg.Lookup(b.Supertype)
			if !ok {
				return nil, fmt.Errorf("latticecfg: basic operator %q declares unknown supertype %q (declare it earlier in the document)", b.Name, b.Supertype)
			}
		}
		if _, err := reg.Declare(b.Name, nil, super); err != nil {
			return nil, fmt.Errorf("latticecfg: declaring %q: %w", b.Name, err)
		}
	}

	for _, c := range doc.Compounds {
		variance := make([]typeterm.Variance, len(c.Variance))
		for i, v := range c.Variance {
			switch v {
			case "covariant":
				variance[i] = typeterm.Covariant
			case "contravariant":
				variance[i] = typeterm.Contravariant
			default:
				return nil, fmt.Errorf("latticecfg: operator %q: unknown variance %q (want \"covariant\" or \"contravariant\")", c.Name, v)
			}
		}
		if _, err := reg.Declare(c.Name, variance, nil); err != nil {
			return nil, fmt.Errorf("latticecfg: declaring %q: %w", c.Name, err)
		}
	}

	return reg, nil
}
