package workload

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/registrarlab/regsim/core/model"
)

// profileDef is the YAML shape of one custom scenario.
type profileDef struct {
	Name           string         `yaml:"name"`
	Requests       int            `yaml:"requests"`
	UrgencyPool    []int          `yaml:"urgency_pool,omitempty"`
	CollegeWeights map[string]int `yaml:"college_weights,omitempty"`
	AbsentStaff    []string       `yaml:"absent_staff,omitempty"`
}

// LoadCatalog reads custom scenario profiles from a YAML file and merges
// them over the built-in set. College weights expand into the sampling pool
// (weight n means n duplicated entries); omitted fields inherit the baseline
// defaults.
func LoadCatalog(path string) (map[Scenario]Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario catalog: %w", err)
	}
	var defs []profileDef
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("parse scenario catalog: %w", err)
	}

	catalog := BuiltinProfiles()
	for _, def := range defs {
		if def.Name == "" {
			return nil, fmt.Errorf("scenario catalog: entry without a name")
		}
		p := Profile{
			Requests:    def.Requests,
			UrgencyPool: def.UrgencyPool,
			AbsentStaff: def.AbsentStaff,
		}
		if p.Requests <= 0 {
			p.Requests = catalog[ScenarioBaseline].Requests
		}
		if len(p.UrgencyPool) == 0 {
			p.UrgencyPool = defaultUrgencyPool
		}
		if len(def.CollegeWeights) == 0 {
			p.CollegePool = model.Colleges()
		} else {
			p.CollegePool, err = expandWeights(def.CollegeWeights)
			if err != nil {
				return nil, fmt.Errorf("scenario %q: %w", def.Name, err)
			}
		}
		catalog[Scenario(def.Name)] = p
	}
	return catalog, nil
}

// expandWeights turns {college: weight} into a duplicated sampling pool.
// Keys are sorted so the pool layout is deterministic.
func expandWeights(weights map[string]int) ([]model.College, error) {
	keys := make([]string, 0, len(weights))
	for k := range weights {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var pool []model.College
	for _, k := range keys {
		w := weights[k]
		if w <= 0 {
			return nil, fmt.Errorf("college %s has non-positive weight %d", k, w)
		}
		for i := 0; i < w; i++ {
			pool = append(pool, model.College(k))
		}
	}
	return pool, nil
}
