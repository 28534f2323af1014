package config

import "sort"

func target(v int) *int { return &v }

var Presets = map[string]map[string]*Config{
	"sorting": {
		"four": {
			Category: "sorting", Algorithm: "bubble_sort",
			Array: ArrayConfig{Values: []int{5, 3, 8, 1}},
		},
		"reversed": {
			Category: "sorting", Algorithm: "insertion_sort",
			Array: ArrayConfig{Size: 30, Shape: "reversed", Seed: 1},
		},
		"nearly_sorted": {
			Category: "sorting", Algorithm: "insertion_sort",
			Array: ArrayConfig{Size: 40, Shape: "nearly_sorted", Seed: 7},
		},
		"duplicates": {
			Category: "sorting", Algorithm: "counting_sort",
			Array: ArrayConfig{Size: 50, Shape: "few_unique", Seed: 3},
		},
		"large": {
			Category: "sorting", Algorithm: "quick_sort", Speed: 10,
			Array: ArrayConfig{Size: 200, Shape: "random", Seed: 42},
		},
	},
	"searching": {
		"binary_demo": {
			Category: "searching", Algorithm: "binary_search",
			Array:  ArrayConfig{Values: []int{1, 3, 5, 8}},
			Search: SearchConfig{Target: target(5)},
		},
		"absent": {
			Category: "searching", Algorithm: "jump_search",
			Array:  ArrayConfig{Values: []int{10, 20, 30, 40, 50, 60, 70, 80, 90}},
			Search: SearchConfig{Target: target(45)},
		},
		"uniform": {
			Category: "searching", Algorithm: "interpolation_search",
			Array:  ArrayConfig{Size: 60, Shape: "sorted", Seed: 11},
			Search: SearchConfig{Target: target(100)},
		},
	},
}

func GetPreset(category, preset string) *Config {
	categoryPresets, ok := Presets[category]
	if !ok {
		return nil
	}
	cfg, ok := categoryPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(category string) []string {
	categoryPresets, ok := Presets[category]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(categoryPresets))
	for name := range categoryPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
