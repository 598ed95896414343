package profile

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.trainer/pkg/scenario"
)

func writeTestFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

func testScenario() *scenario.Scenario {
	return &scenario.Scenario{
		Key:        "xss-reflected",
		Name:       "Reflected XSS",
		Category:   "xss",
		Difficulty: 1,
		DisabledIn: []string{"demo"},
	}
}

func TestIsActive_Default(t *testing.T) {
	active, err := IsActive(
		testScenario(), &Profile{Name: "classroom"},
	)
	require.NoError(t, err)
	assert.True(t, active)
}

func TestIsActive_DisabledInProfile(t *testing.T) {
	active, err := IsActive(
		testScenario(), &Profile{Name: "demo"},
	)
	require.NoError(t, err)
	assert.False(t, active)
}

func TestIsActive_DisabledKey(t *testing.T) {
	p := &Profile{
		Name:         "classroom",
		DisabledKeys: []scenario.Key{"xss-reflected"},
	}

	active, err := IsActive(testScenario(), p)
	require.NoError(t, err)
	assert.False(t, active)
}

func TestIsActive_DisabledCategory(t *testing.T) {
	p := &Profile{
		Name:               "classroom",
		DisabledCategories: []string{"xss"},
	}

	active, err := IsActive(testScenario(), p)
	require.NoError(t, err)
	assert.False(t, active)
}

func TestIsActive_EmptyProfileName(t *testing.T) {
	_, err := IsActive(testScenario(), &Profile{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestIsActive_NilProfile(t *testing.T) {
	_, err := IsActive(testScenario(), nil)
	require.Error(t, err)
}

func TestIsActive_NilScenario(t *testing.T) {
	_, err := IsActive(nil, &Profile{Name: "classroom"})
	require.Error(t, err)
}

func TestIsActive_ReevaluatedPerCall(t *testing.T) {
	sc := testScenario()
	p := &Profile{Name: "classroom"}

	active, err := IsActive(sc, p)
	require.NoError(t, err)
	assert.True(t, active)

	// Swapping the profile between calls must take effect
	// immediately: no caching.
	p.Name = "demo"
	active, err = IsActive(sc, p)
	require.NoError(t, err)
	assert.False(t, active)
}

func TestProfile_Validate(t *testing.T) {
	require.NoError(t, (&Profile{Name: "ctf"}).Validate())
	require.Error(t, (&Profile{}).Validate())

	var nilProfile *Profile
	require.Error(t, nilProfile.Validate())
}

func TestLoadFile_YAML(t *testing.T) {
	path := t.TempDir() + "/profile.yaml"
	content := `
name: demo
disabled_keys:
  - sql-injection
disabled_categories:
  - xss
`
	require.NoError(
		t, writeTestFile(path, content),
	)

	p, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", p.Name)
	assert.Equal(
		t, []scenario.Key{"sql-injection"}, p.DisabledKeys,
	)
	assert.Equal(t, []string{"xss"}, p.DisabledCategories)
}

func TestLoadFile_MissingName(t *testing.T) {
	path := t.TempDir() + "/profile.yaml"
	require.NoError(
		t, writeTestFile(path, "disabled_keys: [a]"),
	)

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}
