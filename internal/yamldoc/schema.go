package yamldoc

type fileRoot struct {
	FormatVersion string          `yaml:"format_version"`
	Settings      []*settingEntry `yaml:"settings"`
	Graphs        []*graphEntry   `yaml:"graphs"`
}

type settingEntry struct {
	Name        string           `yaml:"name"`
	Parent      string           `yaml:"parent"`
	Description string           `yaml:"description"`
	RenderLayer bool             `yaml:"render_layer"`
	Dynamic     bool             `yaml:"dynamic"`
	Properties  []*propertyEntry `yaml:"properties"`
}

type propertyEntry struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Kind        string `yaml:"kind"`
	Default     any    `yaml:"default"`
	Description string `yaml:"description"`
}

type graphEntry struct {
	Name      string           `yaml:"name"`
	Inputs    []*memberEntry   `yaml:"inputs"`
	Outputs   []*memberEntry   `yaml:"outputs"`
	Variables []*variableEntry `yaml:"variables"`
	Nodes     []*nodeEntry     `yaml:"nodes"`
	Edges     []*edgeEntry     `yaml:"edges"`
}

type memberEntry struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type variableEntry struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Default  any    `yaml:"default"`
	Category string `yaml:"category"`
	Global   string `yaml:"global"`
}

type nodeEntry struct {
	Kind       string         `yaml:"kind"`
	Name       string         `yaml:"name"`
	Type       string         `yaml:"type"`
	Graph      string         `yaml:"graph"`
	Variable   string         `yaml:"variable"`
	Instance   string         `yaml:"instance"`
	Enabled    *bool          `yaml:"enabled"`
	ValueType  string         `yaml:"value_type"`
	Expose     []string       `yaml:"expose"`
	Properties map[string]any `yaml:"properties"`
}

type edgeEntry struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}
