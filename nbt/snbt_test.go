package nbt

import (
	"strings"
	"testing"
)

func TestFormatSNBT(t *testing.T) {
	tests := []struct {
		name string
		tag  *Tag
		want string
	}{
		{"byte", Byte(5), "5b"},
		{"short", Short(-3), "-3s"},
		{"int", Int(42), "42"},
		{"long", Long(9), "9L"},
		{"float", Float(1.5), "1.5f"},
		{"double", Double(0.25), "0.25d"},
		{"string", String("hi \"there\""), `"hi \"there\""`},
		{"int array", IntArray([]int32{1, -2, 3}), "[I;1,-2,3]"},
		{"long array", LongArray([]int64{7}), "[L;7]"},
		{"list", List(Int(1), Int(2)), "[1,2]"},
		{"empty compound", Compound(), "{}"},
		{
			"compound",
			Compound(Entry("a", Int(1)), Entry("b", String("x"))),
			`{"a":1,"b":"x"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatSNBT(tt.tag); got != tt.want {
				t.Errorf("FormatSNBT = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatSNBT_Pretty(t *testing.T) {
	tag := Compound(Entry("a", List(Int(1))))
	out := FormatSNBTWithOptions(tag, SNBTOptions{Pretty: true})
	if !strings.Contains(out, "\n") {
		t.Errorf("pretty output has no newlines: %q", out)
	}
	if !strings.Contains(out, "\"a\"") {
		t.Errorf("missing key in output: %q", out)
	}
}
