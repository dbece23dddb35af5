package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mock-interview-coach/internal/interview"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "templates.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const validCatalog = `
templates:
  - name: Full-Stack Developer
    company_name: Tech Corp
    job_title: Senior Full-Stack Developer
    company_desc: SaaS scale-up.
    job_desc: Own the SDLC.
    round: Technical
    tech_stack: Go, React
    criteria: Depth.
  - name: Product Manager
    company_name: FinTech Neo
    job_title: PM – Payments
    company_desc: Digital bank.
    job_desc: Own the roadmap.
    round: Behavioral
    tech_stack: ""
    criteria: Empathy.
`

func TestLoadCatalog(t *testing.T) {
	catalog, err := LoadCatalog(writeCatalog(t, validCatalog))
	require.NoError(t, err)

	assert.Equal(t, []string{"Full-Stack Developer", "Product Manager"}, catalog.Names())

	cfg, ok := catalog.Get("Product Manager")
	require.True(t, ok)
	assert.Equal(t, interview.RoundBehavioral, cfg.Round)
	assert.Equal(t, "FinTech Neo", cfg.CompanyName)

	_, ok = catalog.Get("Unknown")
	assert.False(t, ok)

	tpl, ok := catalog.GetByIndex(1)
	require.True(t, ok)
	assert.Equal(t, "Full-Stack Developer", tpl.Name)

	_, ok = catalog.GetByIndex(0)
	assert.False(t, ok)
	_, ok = catalog.GetByIndex(3)
	assert.False(t, ok)
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadCatalog_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "пустой каталог",
			content: "templates: []",
		},
		{
			name: "шаблон без имени",
			content: `
templates:
  - name: ""
    company_name: A
    job_title: B
    round: Technical
`,
		},
		{
			name: "дубликат имени",
			content: `
templates:
  - name: Dev
    company_name: A
    job_title: B
    round: Technical
  - name: Dev
    company_name: C
    job_title: D
    round: Behavioral
`,
		},
		{
			name: "неизвестный раунд",
			content: `
templates:
  - name: Dev
    company_name: A
    job_title: B
    round: Trivia
`,
		},
		{
			name: "tech_stack на нетехническом раунде",
			content: `
templates:
  - name: PM
    company_name: A
    job_title: B
    round: Behavioral
    tech_stack: Go
`,
		},
		{
			name: "нет company_name",
			content: `
templates:
  - name: Dev
    job_title: B
    round: Technical
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCatalog(writeCatalog(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestRepoCatalogIsValid(t *testing.T) {
	// каталог, который реально лежит в репозитории, обязан проходить валидацию
	catalog, err := LoadCatalog(filepath.Join("..", "..", "config", "templates.yaml"))
	require.NoError(t, err)
	assert.Len(t, catalog.Templates, 4)
}
