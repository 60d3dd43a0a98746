package filter

import (
	"testing"

	"github.com/wasmregistry/codemap/pkg/registry"
)

func testContracts() []registry.Contract {
	return []registry.Contract{
		{CodeID: "1", Name: "cw20_base", Description: "Fungible token base", Governance: "Genesis"},
		{CodeID: "2", Name: "cw4_group", Description: "Group membership", Governance: "Genesis", Deprecated: true},
		{CodeID: "3", Name: "vesting", Description: "Token vesting schedules", Governance: "17"},
	}
}

func TestContractFilterEmpty(t *testing.T) {
	contracts := testContracts()

	var nilFilter *ContractFilter
	if got := nilFilter.Apply(contracts); len(got) != len(contracts) {
		t.Errorf("nil filter returned %d records, want %d", len(got), len(contracts))
	}

	empty := &ContractFilter{}
	if got := empty.Apply(contracts); len(got) != len(contracts) {
		t.Errorf("empty filter returned %d records, want %d", len(got), len(contracts))
	}
}

func TestContractFilterSearch(t *testing.T) {
	tests := []struct {
		search   string
		expected []string
	}{
		{"cw20", []string{"1"}},
		{"CW20", []string{"1"}},       // case-insensitive
		{"token", []string{"1", "3"}}, // matches description too
		{"nothing", nil},
	}

	for _, test := range tests {
		f := &ContractFilter{Search: test.search}
		got := f.Apply(testContracts())
		if len(got) != len(test.expected) {
			t.Errorf("Search=%q returned %d records, want %d", test.search, len(got), len(test.expected))
			continue
		}
		for i, c := range got {
			if c.CodeID != test.expected[i] {
				t.Errorf("Search=%q record %d = %s, want %s", test.search, i, c.CodeID, test.expected[i])
			}
		}
	}
}

func TestContractFilterGovernance(t *testing.T) {
	f := &ContractFilter{Governance: "Genesis"}
	got := f.Apply(testContracts())
	if len(got) != 2 {
		t.Fatalf("Governance=Genesis returned %d records, want 2", len(got))
	}

	f = &ContractFilter{Governance: "17"}
	got = f.Apply(testContracts())
	if len(got) != 1 || got[0].CodeID != "3" {
		t.Fatalf("Governance=17 returned %v", got)
	}
}

func TestContractFilterDeprecated(t *testing.T) {
	f := &ContractFilter{Deprecated: true}
	got := f.Apply(testContracts())
	if len(got) != 1 || got[0].CodeID != "2" {
		t.Fatalf("Deprecated filter returned %v", got)
	}
}

func TestContractFilterCombined(t *testing.T) {
	// All conditions must hold at once.
	f := &ContractFilter{Search: "group", Governance: "Genesis", Deprecated: true}
	got := f.Apply(testContracts())
	if len(got) != 1 || got[0].CodeID != "2" {
		t.Fatalf("combined filter returned %v", got)
	}

	f = &ContractFilter{Search: "group", Governance: "17"}
	if got := f.Apply(testContracts()); len(got) != 0 {
		t.Fatalf("conflicting filter returned %v", got)
	}
}
