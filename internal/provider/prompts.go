package provider

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yml
var promptsRaw []byte

// PromptTemplate is one portal endpoint's prompt, with {name} placeholders.
type PromptTemplate struct {
	Description string `yaml:"description"`
	Template    string `yaml:"template"`
}

var promptTemplates = loadPromptTemplates()

func loadPromptTemplates() map[string]PromptTemplate {
	var templates map[string]PromptTemplate
	if err := yaml.Unmarshal(promptsRaw, &templates); err != nil {
		// The file is embedded; a parse failure is a build defect.
		panic(fmt.Sprintf("invalid embedded prompts.yml: %v", err))
	}
	return templates
}

// BuildPrompt expands the named endpoint template with the given variables.
func BuildPrompt(endpoint string, vars map[string]string) (string, error) {
	template, ok := promptTemplates[endpoint]
	if !ok {
		return "", fmt.Errorf("unknown prompt endpoint: %s", endpoint)
	}
	prompt := template.Template
	for name, value := range vars {
		prompt = strings.ReplaceAll(prompt, "{"+name+"}", value)
	}
	return prompt, nil
}

// PromptEndpoints lists the endpoints with a registered template.
func PromptEndpoints() []string {
	endpoints := make([]string, 0, len(promptTemplates))
	for name := range promptTemplates {
		endpoints = append(endpoints, name)
	}
	return endpoints
}
