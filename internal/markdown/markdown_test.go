package markdown

import "testing"

func TestRender(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "bold italic and bullets",
			in:   "**bold** and *italic*\n- a\n- b",
			want: "<strong>bold</strong> and <em>italic</em><br>• a<br>• b",
		},
		{
			name: "plain text untouched",
			in:   "just words",
			want: "just words",
		},
		{
			name: "numbered lines kept as-is",
			in:   "1. first\n2. second",
			want: "1. first<br>2. second",
		},
		{
			name: "dash mid-line is not a bullet",
			in:   "a - b",
			want: "a - b",
		},
		{
			name: "unpaired asterisk survives",
			in:   "5 * 3",
			want: "5 * 3",
		},
		{
			name: "raw markup is escaped",
			in:   "<script>alert(1)</script> & **bold**",
			want: "&lt;script&gt;alert(1)&lt;/script&gt; &amp; <strong>bold</strong>",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
		{
			name: "bold pair not consumed as italics",
			in:   "**a** *b*",
			want: "<strong>a</strong> <em>b</em>",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Render(tc.in); got != tc.want {
				t.Errorf("Render(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestRenderDeterministic(t *testing.T) {
	t.Parallel()
	in := "**x**\n- y"
	if Render(in) != Render(in) {
		t.Error("Render must be deterministic")
	}
}
