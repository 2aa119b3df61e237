package display

import (
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestNarrate(t *testing.T) {
	tests := map[string]struct {
		template string
		data     map[string]string
		exp      string
	}{
		"move": {
			template: "move",
			data:     map[string]string{"Actor": "Ripley", "Room": "Corridor"},
			exp:      "Ripley moves into Corridor.",
		},
		"move through door": {
			template: "move",
			data:     map[string]string{"Actor": "Ripley", "Room": "Medbay", "Door": "through the sealed hatch"},
			exp:      "Ripley moves through the sealed hatch into Medbay.",
		},
		"examine": {
			template: "examine",
			data:     map[string]string{"Actor": "Ripley", "Target": "Kane"},
			exp:      "Ripley looks Kane over.",
		},
		"quick radio": {
			template: "quick_radio",
			data:     map[string]string{"Actor": "Ripley", "Message": "All quiet."},
			exp:      `Ripley keys the radio: "All quiet."`,
		},
		"wait": {
			template: "wait",
			data:     map[string]string{"Actor": "Ripley"},
			exp:      "Ripley holds position.",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := Narrate(tt.template, tt.data)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "narration", got, tt.exp)
		})
	}
}

func TestNarrate_UnknownTemplate(t *testing.T) {
	if _, err := Narrate("interpretive_dance", nil); err == nil {
		t.Fatal("expected an error for an unknown template")
	}
}

func TestWrap(t *testing.T) {
	long := strings.Repeat("contact ", 20)
	wrapped := Wrap(long)
	for _, line := range strings.Split(wrapped, "\n") {
		if len(line) > 80 {
			t.Errorf("line longer than 80 columns: %q", line)
		}
	}
}
