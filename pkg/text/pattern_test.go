package text

import (
	"testing"

	"github.com/dlclark/regexp2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		flags   string
		want    Flags
		wantStr string
		wantErr string
	}{
		{
			name:    "empty",
			flags:   "",
			want:    Flags{},
			wantStr: "",
		},
		{
			name:    "global_ignore_case",
			flags:   "ig",
			want:    Flags{Global: true, IgnoreCase: true},
			wantStr: "gi",
		},
		{
			name:    "all_supported",
			flags:   "ymsuigd",
			want:    Flags{Indices: true, Global: true, IgnoreCase: true, Multiline: true, DotAll: true, Unicode: true, Sticky: true},
			wantStr: "dgimsuy",
		},
		{
			name:    "duplicate",
			flags:   "gg",
			wantErr: "duplicate flag",
		},
		{
			name:    "unknown",
			flags:   "gx",
			wantErr: "unsupported flag",
		},
		{
			name:    "unicode_sets_unsupported",
			flags:   "v",
			wantErr: "unsupported flag",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFlags(tt.flags)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidFlags)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantStr, got.String())
		})
	}
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		flags   string
		wantErr error
	}{
		{name: "simple", source: `x=(\d)`, flags: "g"},
		{name: "named", source: `(?<year>\d{4})`},
		{name: "unclosed_group", source: "(", wantErr: ErrInvalidPattern},
		{name: "unclosed_class", source: "[a-", wantErr: ErrInvalidPattern},
		{name: "bad_flags", source: "a", flags: "q", wantErr: ErrInvalidFlags},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(tt.source, tt.flags)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.True(t, p.IsRegexp())
		})
	}
}

func TestPattern_String(t *testing.T) {
	assert.Equal(t, "world", Literal("world").String())
	assert.False(t, Literal("world").IsRegexp())
	assert.Equal(t, `/x=(\d)/gi`, MustCompile(`x=(\d)`, "ig").String())
	assert.True(t, MustCompile("a", "g").Flags().Global)
}

func TestMustCompile_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustCompile("(", "")
	})
}

func TestFlags_Options(t *testing.T) {
	assert.Equal(t, regexp2.RegexOptions(regexp2.ECMAScript), Flags{}.options())
	assert.Equal(t,
		regexp2.RegexOptions(regexp2.ECMAScript|regexp2.IgnoreCase|regexp2.Multiline|regexp2.Singleline),
		Flags{IgnoreCase: true, Multiline: true, DotAll: true, Global: true}.options())
}

func TestGroupOrder(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		wantCount int
		wantNamed bool
	}{
		{name: "none", source: `abc`, wantCount: 0},
		{name: "unnamed", source: `(a)(b)`, wantCount: 2},
		{name: "mixed", source: `(?<n>a)(b)`, wantCount: 2, wantNamed: true},
		{name: "non_capturing_and_lookaround", source: `(?:a)(?=b)(?!c)(?<=d)(?<!e)(f)`, wantCount: 1},
		{name: "escaped_and_in_class", source: `\(x[(](y)\)`, wantCount: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := MustCompile(tt.source, "")
			assert.Len(t, p.order, tt.wantCount+1)
			assert.Equal(t, tt.wantNamed, p.named)
		})
	}

	// regexp2 numbers the named group last; position 1 must still map to it
	p := MustCompile(`(?<n>a)(b)`, "")
	assert.Equal(t, []int{0, p.re.GroupNumberFromName("n"), 1}, p.order)
}
