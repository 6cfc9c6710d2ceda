package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"MIN_CONFIDENCE", "PDF_MIN_TEXT_LENGTH", "OCR_DPI", "OCR_ENGINE", "LOG_OUTPUT"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, 70.0, cfg.Classifier.MinConfidence)
	assert.Equal(t, 10, cfg.OCR.MinPDFTextLength)
	assert.Equal(t, 300, cfg.OCR.DPI)
	assert.Equal(t, "tesseract", cfg.OCR.Engine)
	assert.Equal(t, []string{"stdout"}, cfg.LogOutputs)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MIN_CONFIDENCE", "82.5")
	t.Setenv("OCR_DPI", "150")
	t.Setenv("OCR_ENGINE", "Textract")
	t.Setenv("LOG_OUTPUT", "stdout, logs/app.log")

	cfg := Load()
	assert.Equal(t, 82.5, cfg.Classifier.MinConfidence)
	assert.Equal(t, 150, cfg.OCR.DPI)
	assert.Equal(t, "textract", cfg.OCR.Engine)
	assert.Equal(t, []string{"stdout", "logs/app.log"}, cfg.LogOutputs)
}

func TestLoadIgnoresInvalidValues(t *testing.T) {
	t.Setenv("MIN_CONFIDENCE", "250")
	t.Setenv("OCR_WORKERS", "-3")
	t.Setenv("PDF_MIN_TEXT_LENGTH", "ten")

	cfg := Load()
	assert.Equal(t, DefaultMinConfidence, cfg.Classifier.MinConfidence)
	assert.Equal(t, DefaultOCRWorkers, cfg.OCR.Workers)
	assert.Equal(t, DefaultMinPDFTextLength, cfg.OCR.MinPDFTextLength)
}

func TestDefaultClasses(t *testing.T) {
	set := DefaultClasses()
	assert.Equal(t, []string{"drivers_licence", "bank_statement", "invoice", "passport"}, set.Names())

	for _, def := range set.Definitions() {
		assert.NotEmpty(t, def.Keywords, def.Name)
	}
}

func TestParseClassesNormalizesKeywords(t *testing.T) {
	set, err := ParseClasses([]byte(`
classes:
  - name: receipt
    keywords: ["  Receipt ", "TOTAL PAID"]
`))
	require.NoError(t, err)

	defs := set.Definitions()
	require.Len(t, defs, 1)
	assert.Equal(t, []string{"receipt", "total paid"}, defs[0].Keywords)
}

func TestParseClassesRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"empty":     `classes: []`,
		"no name":   "classes:\n  - keywords: [a]\n",
		"reserved":  "classes:\n  - name: unknown_file\n    keywords: [a]\n",
		"duplicate": "classes:\n  - name: a\n    keywords: [x]\n  - name: a\n    keywords: [y]\n",
		"no kw":     "classes:\n  - name: a\n",
		"blank kw":  "classes:\n  - name: a\n    keywords: [\"  \"]\n",
		"bad yaml":  "classes: [",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseClasses([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestDefinitionsReturnsCopy(t *testing.T) {
	set := DefaultClasses()
	defs := set.Definitions()
	defs[0].Keywords[0] = "mutated"

	assert.NotEqual(t, "mutated", set.Definitions()[0].Keywords[0])
}

func TestLoadClassesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classes.yaml")
	require.NoError(t, os.WriteFile(path, []byte("classes:\n  - name: memo\n    keywords: [memorandum]\n"), 0o644))

	set, err := LoadClasses(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"memo"}, set.Names())

	_, err = LoadClasses(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
