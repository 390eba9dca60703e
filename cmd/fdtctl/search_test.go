package main

import (
	"testing"
)

func TestSearchCommand(t *testing.T) {
	tests := []struct {
		name           string
		pattern        string
		compatible     bool
		regex          bool
		caseSensitive  bool
		maxResults     int
		wantContain    []string
		wantNotContain []string
		wantErr        bool
	}{
		{
			name:        "by name",
			pattern:     "serial",
			wantContain: []string{"/soc/serial@10000000"},
		},
		{
			name:        "case insensitive by default",
			pattern:     "SERIAL",
			wantContain: []string{"/soc/serial@10000000"},
		},
		{
			name:           "case sensitive misses",
			pattern:        "SERIAL",
			caseSensitive:  true,
			wantContain:    []string{"Total: 0 nodes"},
			wantNotContain: []string{"/soc/serial@10000000"},
		},
		{
			name:        "by compatible substring",
			pattern:     "ns16550",
			wantContain: []string{"/soc/serial@10000000", "ns16550a"},
		},
		{
			name:        "exact compatible",
			pattern:     "ns16550a",
			compatible:  true,
			wantContain: []string{"/soc/serial@10000000"},
		},
		{
			name:           "exact compatible misses prefix",
			pattern:        "ns16550",
			compatible:     true,
			wantContain:    []string{"Total: 0 nodes"},
			wantNotContain: []string{"serial"},
		},
		{
			name:        "regex",
			pattern:     "^serial@",
			regex:       true,
			wantContain: []string{"/soc/serial@10000000"},
		},
		{
			name:    "bad regex",
			pattern: "([",
			regex:   true,
			wantErr: true,
		},
		{
			name:        "max results",
			pattern:     "c", // soc, chosen, intc
			maxResults:  1,
			wantContain: []string{"Total: 1 nodes", "limited to 1 results"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset flags
			quiet = false
			verbose = false
			jsonOut = false
			searchCompatible = tt.compatible
			searchRegex = tt.regex
			searchCaseSensitive = tt.caseSensitive
			searchMaxResults = tt.maxResults

			output, err := captureOutput(t, func() error {
				return runSearch([]string{testBlobPath(t), tt.pattern})
			})

			if (err != nil) != tt.wantErr {
				t.Errorf("runSearch() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			assertContains(t, output, tt.wantContain)
			assertNotContains(t, output, tt.wantNotContain)
		})
	}
}

func TestSearchCommandJSON(t *testing.T) {
	quiet = false
	verbose = false
	jsonOut = true
	searchCompatible = false
	searchRegex = false
	searchCaseSensitive = false
	searchMaxResults = 0
	defer func() { jsonOut = false }()

	output, err := captureOutput(t, func() error {
		return runSearch([]string{testBlobPath(t), "serial"})
	})
	if err != nil {
		t.Fatalf("runSearch() error = %v", err)
	}
	assertJSON(t, output)
	assertContains(t, output, []string{"/soc/serial@10000000", "ns16550a"})
}
