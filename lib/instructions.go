package lib

import (
	_ "embed"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/merryhime/StaMINA/lib/invariant"
)

//go:embed instructions.yaml
var defaultInstructionsYAML []byte

//go:embed instructions.schema.json
var instructionsSchemaJSON string

// InstructionDef is one entry of an instruction definition list. A non-empty
// Condition makes Mnemonic a compare instruction.
type InstructionDef struct {
	Mnemonic  string `yaml:"mnemonic"`
	Condition string `yaml:"condition,omitempty"`
}

type instructionFile struct {
	Instructions []InstructionDef `yaml:"instructions"`
}

// InstructionTable answers case-insensitive mnemonic and condition lookups.
// It is immutable once built and may be shared between tokenizers.
type InstructionTable struct {
	mnemonics  map[string]struct{}
	conditions map[string]struct{}
	compares   map[string][]string
}

func NewInstructionTable(defs []InstructionDef) *InstructionTable {
	table := &InstructionTable{
		mnemonics:  map[string]struct{}{},
		conditions: map[string]struct{}{},
		compares:   map[string][]string{},
	}
	for _, def := range defs {
		mnemonic := strings.ToUpper(def.Mnemonic)
		table.mnemonics[mnemonic] = struct{}{}
		if def.Condition == "" {
			continue
		}
		cond := strings.ToUpper(def.Condition)
		table.conditions[cond] = struct{}{}
		table.compares[mnemonic] = append(table.compares[mnemonic], cond)
	}
	return table
}

var (
	defaultTableOnce sync.Once
	defaultTable     *InstructionTable
)

// DefaultInstructions returns the table built from the embedded instruction
// list. It is built on first use.
func DefaultInstructions() *InstructionTable {
	defaultTableOnce.Do(func() {
		defs, err := decodeInstructions(defaultInstructionsYAML)
		invariant.ExpectNoError(err, "decoding embedded instruction table")
		defaultTable = NewInstructionTable(defs)
	})
	return defaultTable
}

// LoadInstructionTable reads a YAML instruction list of the form
//
//	instructions:
//	  - mnemonic: ADD
//	  - {mnemonic: CMP, condition: EQ}
func LoadInstructionTable(r io.Reader) (*InstructionTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading instruction table: %w", err)
	}
	defs, err := decodeInstructions(data)
	if err != nil {
		return nil, err
	}
	return NewInstructionTable(defs), nil
}

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
)

func instructionSchema() *jsonschema.Schema {
	schemaOnce.Do(func() {
		var err error
		schema, err = jsonschema.CompileString("instructions.schema.json", instructionsSchemaJSON)
		invariant.ExpectNoError(err, "compiling instruction table schema")
	})
	return schema
}

func decodeInstructions(data []byte) ([]InstructionDef, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing instruction table: %w", err)
	}
	if err := instructionSchema().Validate(doc); err != nil {
		return nil, fmt.Errorf("invalid instruction table: %w", err)
	}

	var file instructionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing instruction table: %w", err)
	}
	return file.Instructions, nil
}

func (t *InstructionTable) IsMnemonic(name string) bool {
	_, ok := t.mnemonics[strings.ToUpper(name)]
	return ok
}

// IsCompare reports whether name must be written with a /CONDITION suffix.
func (t *InstructionTable) IsCompare(name string) bool {
	_, ok := t.compares[strings.ToUpper(name)]
	return ok
}

func (t *InstructionTable) IsCondition(name string) bool {
	_, ok := t.conditions[strings.ToUpper(name)]
	return ok
}

func (t *InstructionTable) Mnemonics() []string {
	return sortedKeys(t.mnemonics)
}

func (t *InstructionTable) Conditions() []string {
	return sortedKeys(t.conditions)
}

// ConditionsFor returns the conditions listed with a compare mnemonic, in
// definition order.
func (t *InstructionTable) ConditionsFor(mnemonic string) []string {
	conds := t.compares[strings.ToUpper(mnemonic)]
	return append([]string(nil), conds...)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
