package judge

import "testing"

func TestParseVerdict(t *testing.T) {
	cases := []struct {
		reply      string
		verdict    string
		recognized bool
	}{
		{"correct", "correct", true},
		{"  INCORRECT\n", "incorrect", true},
		{"", "incorrect", true},
		{"Correct.", "correct", true},
		{"**incorrect** porque cambia el sentido", "incorrect", true},
		{"correcto", "incorrect", false},
		{"No estoy seguro", "incorrect", false},
	}
	for _, tc := range cases {
		verdict, recognized := ParseVerdict(tc.reply)
		if verdict != tc.verdict || recognized != tc.recognized {
			t.Fatalf("ParseVerdict(%q) = %q, %v; want %q, %v", tc.reply, verdict, recognized, tc.verdict, tc.recognized)
		}
	}
}
