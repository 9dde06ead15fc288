package record

import (
	"sort"
	"strconv"
	"strings"
)

// Record regroups the flat result data into a submitted-style record: top
// level fields as keys and resources as a list of objects.
func (r Result) Record() map[string]any {
	out := make(map[string]any, len(r.Data))
	resources := map[int]map[string]any{}

	for key, value := range r.Data {
		parts := strings.Split(key, ".")
		if len(parts) == 3 && parts[0] == ResourcesKey {
			idx, err := strconv.Atoi(parts[1])
			if err == nil {
				if resources[idx] == nil {
					resources[idx] = map[string]any{}
				}
				resources[idx][parts[2]] = value
				continue
			}
		}
		out[key] = value
	}

	if len(resources) == 0 {
		return out
	}
	indexes := make([]int, 0, len(resources))
	for idx := range resources {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)
	list := make([]map[string]any, 0, len(indexes))
	for _, idx := range indexes {
		list = append(list, resources[idx])
	}
	out[ResourcesKey] = list
	return out
}
