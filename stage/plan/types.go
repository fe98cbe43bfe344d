// Package plan loads YAML staging plans for the perfstage CLI.
package plan

// Plan describes a batch of scripts to stage into one namespace
type Plan struct {
	// Name is the unique identifier for this plan
	Name string `yaml:"name"`

	// Description provides human-readable details about the plan
	Description string `yaml:"description"`

	// Namespace is where the archive ConfigMaps are published
	Namespace string `yaml:"namespace"`

	// Parallelism bounds how many scripts are staged concurrently;
	// zero means the configured default
	Parallelism int `yaml:"parallelism,omitempty"`

	// OutputDir is where archive files are written; empty means the
	// current working directory
	OutputDir string `yaml:"outputDir,omitempty"`

	// Scripts lists the load-test scripts to stage
	Scripts []Script `yaml:"scripts"`
}

// Script names one load-test script in a plan
type Script struct {
	// Name is an optional label used in logs
	Name string `yaml:"name,omitempty"`

	// Path is the script file to archive and publish
	Path string `yaml:"path"`
}

// ScriptPaths returns the script file paths in plan order
func (p *Plan) ScriptPaths() []string {
	paths := make([]string, 0, len(p.Scripts))
	for _, s := range p.Scripts {
		paths = append(paths, s.Path)
	}
	return paths
}
