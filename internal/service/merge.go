// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "github.com/MKhiriev/mn-config/models"

// deepMerge merges override into base and returns base. Nested maps merge
// recursively per key; every other value kind (arrays included) replaces the
// base value wholesale. A nil override value keeps the base entry. Zero
// values such as false, 0 and "" are real overrides and do win.
func deepMerge(base, override models.Value) models.Value {
	if base == nil {
		base = models.Value{}
	}

	for key, overrideValue := range override {
		if overrideValue == nil {
			continue
		}

		overrideMap, overrideIsMap := overrideValue.(map[string]any)
		baseMap, baseIsMap := base[key].(map[string]any)
		if overrideIsMap && baseIsMap {
			base[key] = deepMerge(baseMap, overrideMap)
			continue
		}

		base[key] = overrideValue
	}

	return base
}
