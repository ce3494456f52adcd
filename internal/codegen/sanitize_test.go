package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeIdentifier(t *testing.T) {
	cases := map[string]string{
		"length":   "length",
		"myVar2":   "myVar2",
		"my-var":   "my_var",
		"a__b":     "a_b",
		"_leading": "leading",
		"2x":       "_2x",
		"":         "_v",
		"___":      "_v",
		"@!":       "_v",
		"class":    "class_",
		"var":      "var_",
		"piñata":   "pi_ata",
	}

	for input, want := range cases {
		assert.Equal(t, want, SanitizeIdentifier(input), "%q", input)
	}
}

func TestImportSet(t *testing.T) {

	t.Run("canonical ordering", func(t *testing.T) {
		set := NewImportSet()
		set.Add("nz")
		set.Add("ta")
		set.Add("Series")
		set.Add("math")

		assert.Equal(t, []string{"Series", "ta", "math", "nz"}, set.List())
	})

	t.Run("adding twice is idempotent", func(t *testing.T) {
		set := NewImportSet()
		set.Add("ta")
		set.Add("ta")

		assert.Equal(t, []string{"ta"}, set.List())
		assert.True(t, set.Has("ta"))
		assert.False(t, set.Has("math"))
	})

	t.Run("import statement", func(t *testing.T) {
		set := NewImportSet()
		set.Add("Series")
		set.Add("na")

		assert.Equal(t,
			`import { Series, na } from "@pinelang/runtime";`,
			set.ImportStatement(),
		)
	})
}
