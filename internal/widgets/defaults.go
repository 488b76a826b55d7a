package widgets

import (
	"splitflap/internal/config"
)

// DefaultRegistry wires up every built-in widget from the loaded config.
func DefaultRegistry(cfg config.Config) *Registry {
	r := NewRegistry()
	r.Register(TextWidget{})
	r.Register(FileWidget{})
	r.Register(ClearWidget{})
	r.Register(JokeWidget{})
	r.Register(SATWordWidget{Path: cfg.WordsPath})
	r.Register(WeatherWidget{Location: cfg.WeatherLocation})
	return r
}
