package model

// EmissionFactor is a reference conversion rate owned by an external
// reference-data collaborator. The core only reads factors; it never
// derives or mutates them.
type EmissionFactor struct {
	Gas            Gas            `json:"gas" yaml:"gas"`
	Source         SourceCategory `json:"source" yaml:"source"`
	Region         string         `json:"region" yaml:"region"`
	Sector         string         `json:"sector,omitempty" yaml:"sector,omitempty"`
	Factor         float64        `json:"factor" yaml:"factor"`
	Unit           string         `json:"unit" yaml:"unit"`
	Year           int            `json:"year" yaml:"year"`
	UncertaintyPct float64        `json:"uncertainty,omitempty" yaml:"uncertainty,omitempty"`
}

// FactorSet is an in-memory view of an emission factor table.
type FactorSet struct {
	Factors []EmissionFactor
}

// Find returns the most specific factor matching the query, scored by how
// many optional dimensions (region, sector, year) match exactly. Gas and
// source must always match. Returns false when nothing matches.
func (fs *FactorSet) Find(gas Gas, source SourceCategory, region, sector string, year int) (EmissionFactor, bool) {
	best := -1
	var found EmissionFactor

	for _, f := range fs.Factors {
		if f.Gas != gas || f.Source != source {
			continue
		}

		score := 0
		switch {
		case f.Region == region && region != "":
			score += 4
		case f.Region != "" && f.Region != region:
			continue
		}
		switch {
		case f.Sector == sector && sector != "":
			score += 2
		case f.Sector != "" && f.Sector != sector:
			continue
		}
		if f.Year == year && year != 0 {
			score++
		}

		if score > best {
			best = score
			found = f
		}
	}

	return found, best >= 0
}
