package config

import "sort"

func deck(mode, ease string, slides ...SlideConfig) *Config {
	cfg := DefaultConfig()
	cfg.Mode = mode
	cfg.Easing = ease
	cfg.Slides = slides
	return cfg
}

var Presets = map[string]*Config{
	"journey": deck("tween", "cubic",
		SlideConfig{Position: 0, Text: "A journey through space and time"},
		SlideConfig{Position: 100, Text: "Every star is a snapshot"},
		SlideConfig{Position: 250, Text: "Time only moves forward"},
		SlideConfig{Position: 500, Text: "Speed is what you observe"},
		SlideConfig{Position: 800, Text: "Thanks for travelling"},
	),
	"lecture": deck("tween", "quint",
		SlideConfig{Position: 0, Text: "Reducers"},
		SlideConfig{Position: 40, Text: "State in, state out"},
		SlideConfig{Position: 80, Text: "Events are values"},
		SlideConfig{Position: 120, Text: "Fold them in order"},
		SlideConfig{Position: 200, Text: "Render the snapshot"},
		SlideConfig{Position: 320, Text: "Questions?"},
	),
	"warp": deck("pointer", "cubic"),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
