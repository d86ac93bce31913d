package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_Wildcards(t *testing.T) {
	tests := []struct {
		pattern   string
		candidate string
		want      bool
	}{
		{"%_tmp", "foo_tmp", true},
		{"%_tmp", "x_tmp", true},
		{"%_tmp", "tmp", false},
		{"A%B", "aXXXb", true},
		{"A%B", "AB", true},
		{"A%B", "aXXXbc", false},
		{"dbo.log_", "dbo.log1", true},
		{"dbo.log_", "dbo.log12", false},
		{"dbo.orders", "DBO.ORDERS", true},
		{"dbo.orders", "dboxorders", false}, // '.' is literal
		{"a+b", "a+b", true},
		{"a+b", "aab", false},
		{"[x]", "[x]", true},
		{"%", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.candidate, func(t *testing.T) {
			p, err := Compile(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Matches(tt.candidate))
		})
	}
}

func TestCompile_Empty(t *testing.T) {
	_, err := Compile("")
	assert.Error(t, err)

	_, err = Compile("   ")
	assert.Error(t, err)
}

func TestSet_IsExcluded(t *testing.T) {
	set, err := CompileAll([]string{"staging.%", "%.tmp_%"})
	require.NoError(t, err)

	assert.True(t, set.IsExcluded("staging.orders"))
	assert.True(t, set.IsExcluded("dbo.tmp_foo"))
	assert.False(t, set.IsExcluded("dbo.orders"))

	p, ok := set.Match("dbo.tmp_foo")
	require.True(t, ok)
	assert.Equal(t, "%.tmp_%", p.String())
}

func TestSet_EmptyExcludesNothing(t *testing.T) {
	set, err := CompileAll(nil)
	require.NoError(t, err)
	assert.False(t, set.IsExcluded("dbo.orders"))
	assert.Empty(t, set.Strings())
}

func TestCompileAll_Malformed(t *testing.T) {
	_, err := CompileAll([]string{"dbo.%", ""})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "exclusion entry 1")
}
