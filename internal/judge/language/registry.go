package language

import (
	appErr "codejudge/pkg/errors"

	"codejudge/internal/judge/model"
)

// Registry is the language lookup table.
type Registry struct {
	adapters map[model.Language]Adapter
}

// NewRegistry creates a registry with all supported languages registered.
func NewRegistry() *Registry {
	r := &Registry{adapters: make(map[model.Language]Adapter)}
	r.register(pythonAdapter{})
	r.register(javascriptAdapter{})
	r.register(javaAdapter{})
	r.register(cAdapter{})
	r.register(cppAdapter{})
	return r
}

func (r *Registry) register(a Adapter) {
	r.adapters[a.ID()] = a
}

// Get returns the adapter for a language.
func (r *Registry) Get(lang model.Language) (Adapter, error) {
	a, ok := r.adapters[lang]
	if !ok {
		return nil, appErr.Newf(appErr.LanguageNotSupported, "unsupported language: %s", lang)
	}
	return a, nil
}
