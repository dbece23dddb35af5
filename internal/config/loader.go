package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"mock-interview-coach/internal/interview"
)

// LoadCatalog загружает каталог шаблонов вакансий из YAML файла
func LoadCatalog(filename string) (*Catalog, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла %s: %w", filename, err)
	}

	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("ошибка парсинга YAML: %w", err)
	}

	if err := validateCatalog(&catalog); err != nil {
		return nil, fmt.Errorf("ошибка валидации каталога: %w", err)
	}

	return &catalog, nil
}

// validateCatalog проверяет корректность каталога шаблонов
func validateCatalog(catalog *Catalog) error {
	if len(catalog.Templates) == 0 {
		return fmt.Errorf("каталог не содержит ни одного шаблона")
	}

	seen := make(map[string]bool, len(catalog.Templates))
	for i, tpl := range catalog.Templates {
		if tpl.Name == "" {
			return fmt.Errorf("шаблон %d должен иметь name", i+1)
		}
		if seen[tpl.Name] {
			return fmt.Errorf("шаблон %q объявлен дважды", tpl.Name)
		}
		seen[tpl.Name] = true

		if tpl.CompanyName == "" {
			return fmt.Errorf("шаблон %q должен иметь company_name", tpl.Name)
		}
		if tpl.JobTitle == "" {
			return fmt.Errorf("шаблон %q должен иметь job_title", tpl.Name)
		}

		round, err := interview.ParseRound(tpl.Round)
		if err != nil {
			return fmt.Errorf("шаблон %q: %w", tpl.Name, err)
		}
		if round != interview.RoundTechnical && tpl.TechStack != "" {
			return fmt.Errorf("шаблон %q: tech_stack допустим только для раунда %s",
				tpl.Name, interview.RoundTechnical)
		}
	}

	return nil
}
