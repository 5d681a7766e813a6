package service

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

var ErrUnknownModel = errors.New("unknown model")

// ModelSelector keeps the configured models and the model each user prefers.
type ModelSelector struct {
	models       []domain.Model
	defaultModel string

	mu        sync.RWMutex
	preferred map[domain.Snowflake]string
}

func NewModelSelector(models []domain.Model, defaultModel string) *ModelSelector {
	if defaultModel == "" && len(models) > 0 {
		defaultModel = models[0].Identifier
	}

	return &ModelSelector{
		models:       models,
		defaultModel: defaultModel,
		preferred:    make(map[domain.Snowflake]string),
	}
}

// NewModelSelectorFromConfig reads openrouter.models and openrouter.model.
func NewModelSelectorFromConfig() (*ModelSelector, error) {
	var models []domain.Model

	if err := viper.UnmarshalKey("openrouter.models", &models); err != nil {
		return nil, fmt.Errorf("failed to load models: %w", err)
	}

	log.Debug().Int("models", len(models)).Msg("loaded models")

	return NewModelSelector(models, viper.GetString("openrouter.model")), nil
}

func (s *ModelSelector) Models() []domain.Model {
	return s.models
}

func (s *ModelSelector) Default() string {
	return s.defaultModel
}

// Find returns the model with the given keyword or identifier.
func (s *ModelSelector) Find(name string) (domain.Model, bool) {
	i := slices.IndexFunc(s.models, func(m domain.Model) bool {
		return strings.EqualFold(m.Keyword, name) || m.Identifier == name
	})
	if i < 0 {
		return domain.Model{}, false
	}

	return s.models[i], true
}

// Search returns the models whose keyword or identifier contains query.
func (s *ModelSelector) Search(query string) []domain.Model {
	query = strings.ToLower(query)

	var out []domain.Model
	for _, m := range s.models {
		if strings.Contains(strings.ToLower(m.Keyword), query) || strings.Contains(strings.ToLower(m.Identifier), query) {
			out = append(out, m)
		}
	}

	return out
}

// Prefer stores the user's preferred model.
func (s *ModelSelector) Prefer(userID domain.Snowflake, name string) (domain.Model, error) {
	m, ok := s.Find(name)
	if !ok {
		return domain.Model{}, fmt.Errorf("'%s': %w", name, ErrUnknownModel)
	}

	s.mu.Lock()
	s.preferred[userID] = m.Identifier
	s.mu.Unlock()

	return m, nil
}

// ModelFor returns the user's preferred model or the default model.
func (s *ModelSelector) ModelFor(userID domain.Snowflake) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if m, ok := s.preferred[userID]; ok {
		return m
	}

	return s.defaultModel
}

// ExtractModel looks for a #keyword in the prompt. It returns the prompt
// without the keyword and the matching model identifier, if any.
func (s *ModelSelector) ExtractModel(prompt string) (string, string) {
	words := strings.Fields(prompt)

	for i, w := range words {
		keyword, ok := strings.CutPrefix(w, "#")
		if !ok {
			continue
		}

		if m, found := s.Find(keyword); found {
			rest := append(slices.Clone(words[:i]), words[i+1:]...)
			return strings.Join(rest, " "), m.Identifier
		}
	}

	return prompt, ""
}
