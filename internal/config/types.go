package config

import "mock-interview-coach/internal/interview"

// Catalog представляет каталог готовых шаблонов вакансий
type Catalog struct {
	Templates []Template `yaml:"templates"`
}

// Template представляет один шаблон вакансии
type Template struct {
	Name        string `yaml:"name"`
	CompanyName string `yaml:"company_name"`
	JobTitle    string `yaml:"job_title"`
	CompanyDesc string `yaml:"company_desc"`
	JobDesc     string `yaml:"job_desc"`
	Round       string `yaml:"round"`
	TechStack   string `yaml:"tech_stack"`
	Criteria    string `yaml:"criteria"`
}

// Config конвертирует шаблон в конфигурацию интервью
func (t *Template) Config() interview.Config {
	return interview.Config{
		CompanyName: t.CompanyName,
		JobTitle:    t.JobTitle,
		CompanyDesc: t.CompanyDesc,
		JobDesc:     t.JobDesc,
		Round:       interview.Round(t.Round),
		TechStack:   t.TechStack,
		Criteria:    t.Criteria,
	}
}

// Names возвращает имена шаблонов в порядке объявления
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.Templates))
	for _, t := range c.Templates {
		names = append(names, t.Name)
	}
	return names
}

// Get возвращает конфигурацию интервью по имени шаблона
func (c *Catalog) Get(name string) (interview.Config, bool) {
	for i := range c.Templates {
		if c.Templates[i].Name == name {
			return c.Templates[i].Config(), true
		}
	}
	return interview.Config{}, false
}

// GetByIndex возвращает шаблон по номеру в каталоге (с единицы)
func (c *Catalog) GetByIndex(n int) (Template, bool) {
	if n < 1 || n > len(c.Templates) {
		return Template{}, false
	}
	return c.Templates[n-1], true
}
