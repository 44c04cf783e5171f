package gen

// Schema declares the endpoints of one owner.
type Schema struct {
	// Package is the Go package of the generated file.
	Package string `yaml:"package" toml:"package" json:"package"`
	// Owner is the exported name of the owner type.
	Owner string `yaml:"owner" toml:"owner" json:"owner"`
	// Target is the name of the target type, <Owner>Target when empty.
	Target    string     `yaml:"target" toml:"target" json:"target"`
	Imports   []Import   `yaml:"imports" toml:"imports" json:"imports"`
	Endpoints []Endpoint `yaml:"endpoints" toml:"endpoints" json:"endpoints"`
}

// Import is a package referenced by payload types.
type Import struct {
	Path  string `yaml:"path" toml:"path" json:"path"`
	Alias string `yaml:"alias" toml:"alias" json:"alias"`
}

// Endpoint is one declared endpoint: exactly one of Type and Group is set.
type Endpoint struct {
	Name     string   `yaml:"name" toml:"name" json:"name"`
	Type     string   `yaml:"type" toml:"type" json:"type"`
	Capacity int      `yaml:"capacity" toml:"capacity" json:"capacity"`
	Group    []Member `yaml:"group" toml:"group" json:"group"`
	// Array is the slot count of a repeated endpoint, nil otherwise.
	Array *int `yaml:"array" toml:"array" json:"array"`
}

// Member is one payload type of a group.
type Member struct {
	// Name defaults to the name of the payload type.
	Name     string `yaml:"name" toml:"name" json:"name"`
	Type     string `yaml:"type" toml:"type" json:"type"`
	Capacity int    `yaml:"capacity" toml:"capacity" json:"capacity"`
}

func (s *Schema) targetName() string {
	if s.Target != "" {
		return s.Target
	}

	return s.Owner + "Target"
}

func (e *Endpoint) isGroup() bool {
	return len(e.Group) > 0
}

func (e *Endpoint) slots() int {
	if e.Array == nil {
		return 0
	}

	return *e.Array
}
