package lib

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultInstructions(t *testing.T) {
	table := DefaultInstructions()
	require.Same(t, table, DefaultInstructions())

	require.True(t, table.IsMnemonic("movi"))
	require.True(t, table.IsMnemonic("Syscall"))
	require.False(t, table.IsMnemonic("start"))

	require.True(t, table.IsCompare("cmp"))
	require.True(t, table.IsCompare("CMPI"))
	require.False(t, table.IsCompare("add"))

	require.True(t, table.IsCondition("geu"))
	require.False(t, table.IsCondition("zz"))

	require.Equal(t,
		[]string{"EQ", "GE", "GEU", "GT", "GTU", "LE", "LEU", "LT", "LTU", "NE"},
		table.Conditions())
	require.Contains(t, table.Mnemonics(), "CMP")
	require.Contains(t, table.Mnemonics(), "HALT")
	require.Equal(t, "EQ", table.ConditionsFor("cmp")[0])
	require.Empty(t, table.ConditionsFor("add"))
}

func TestConditionsForIsACopy(t *testing.T) {
	table := NewInstructionTable([]InstructionDef{{Mnemonic: "TST", Condition: "Z"}})
	conds := table.ConditionsFor("tst")
	conds[0] = "NZ"
	require.Equal(t, []string{"Z"}, table.ConditionsFor("TST"))
}

func TestLoadInstructionTable(t *testing.T) {
	table, err := LoadInstructionTable(strings.NewReader(`
instructions:
  - mnemonic: foo
  - {mnemonic: tst, condition: z}
  - {mnemonic: tst, condition: nz}
`))
	require.NoError(t, err)
	require.Equal(t, []string{"FOO", "TST"}, table.Mnemonics())
	require.Equal(t, []string{"NZ", "Z"}, table.Conditions())
	require.Equal(t, []string{"Z", "NZ"}, table.ConditionsFor("tst"))
}

func TestLoadInstructionTableRejects(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"not yaml", "instructions: [\n"},
		{"empty list", "instructions: []\n"},
		{"missing list", "mnemonics: [ADD]\n"},
		{"missing mnemonic", "instructions:\n  - condition: EQ\n"},
		{"unknown field", "instructions:\n  - {mnemonic: ADD, width: 4}\n"},
		{"bad mnemonic", "instructions:\n  - mnemonic: 1ADD\n"},
		{"bad condition", "instructions:\n  - {mnemonic: CMP, condition: E1}\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			table, err := LoadInstructionTable(strings.NewReader(tc.yaml))
			require.Error(t, err)
			require.Nil(t, table)
		})
	}
}

func TestSuggestMnemonic(t *testing.T) {
	table := DefaultInstructions()

	cases := []struct {
		in   string
		want string
	}{
		{"psh", "PUSH"},
		{"move", "MOV"},
		{"addd", "ADD"},
		{"SYSCAL", "SYSCALL"},
	}
	for _, tc := range cases {
		got, ok := table.SuggestMnemonic(tc.in)
		require.True(t, ok, tc.in)
		require.Equal(t, tc.want, got, tc.in)
	}

	_, ok := table.SuggestMnemonic("xyzzyplugh")
	require.False(t, ok)
	_, ok = table.SuggestMnemonic("")
	require.False(t, ok)
}

func TestSuggestCondition(t *testing.T) {
	table := DefaultInstructions()

	got, ok := table.SuggestCondition("eqq")
	require.True(t, ok)
	require.Equal(t, "EQ", got)

	_, ok = table.SuggestCondition("zzzz")
	require.False(t, ok)

	_, ok = NewInstructionTable(nil).SuggestCondition("eq")
	require.False(t, ok)
}
