package router_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/armature-dev/armature/router"
)

func TestCompilePattern_ExtractsParams(t *testing.T) {
	re, names := router.CompilePattern("users/{id}/posts/{slug}")
	require.Equal(t, []string{"id", "slug"}, names)

	m := re.FindStringSubmatch("users/42/posts/hello-world")
	require.NotNil(t, m)
	assert.Equal(t, "42", m[1])
	assert.Equal(t, "hello-world", m[2])
}

func TestCompilePattern_FullMatchOnly(t *testing.T) {
	re, _ := router.CompilePattern("users/{id}")

	assert.NotNil(t, re.FindStringSubmatch("users/42"))
	assert.Nil(t, re.FindStringSubmatch("users/42/extra"))
	assert.Nil(t, re.FindStringSubmatch("prefix/users/42"))
}

func TestCompilePattern_SegmentExcludesSlash(t *testing.T) {
	re, _ := router.CompilePattern("files/{name}")
	assert.Nil(t, re.FindStringSubmatch("files/a/b"))
	assert.NotNil(t, re.FindStringSubmatch("files/a.b"))
}

func TestCompilePattern_LiteralTemplate(t *testing.T) {
	re, names := router.CompilePattern("health")
	assert.Empty(t, names)
	assert.NotNil(t, re.FindStringSubmatch("health"))
	assert.Nil(t, re.FindStringSubmatch("healthz"))
}

func TestCompilePattern_DuplicateNamesKept(t *testing.T) {
	_, names := router.CompilePattern("{id}/compare/{id}")
	assert.Equal(t, []string{"id", "id"}, names)
}

func TestCompilePattern_UnclosedBraceIsLiteral(t *testing.T) {
	re, names := router.CompilePattern("files/{name")
	assert.Empty(t, names)
	assert.NotNil(t, re.FindStringSubmatch("files/{name"))
	assert.Nil(t, re.FindStringSubmatch("files/anything"))
}

// Substituting arbitrary non-slash values into a template and matching
// the result must recover exactly those values, in placeholder order.
func TestCompilePattern_SubstitutionRoundTrip(t *testing.T) {
	cases := []struct {
		template string
		values   []string
	}{
		{"{a}", []string{"x"}},
		{"v1/{tenant}/items/{id}", []string{"acme corp", "9f3"}},
		{"{y}/{m}/{d}/archive", []string{"2026", "08", "27"}},
	}
	for _, tc := range cases {
		re, names := router.CompilePattern(tc.template)
		require.Len(t, names, len(tc.values), tc.template)

		path := tc.template
		for i, name := range names {
			path = router.URL(path, map[string]string{name: tc.values[i]})
		}
		m := re.FindStringSubmatch(path)
		require.NotNil(t, m, "template %q path %q", tc.template, path)
		assert.Equal(t, tc.values, m[1:])
	}
}
