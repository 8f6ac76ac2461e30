package project

// Project represents an in-memory block project: a stage, its sprites,
// the extension modules it uses, and any binary assets (costumes, sounds).
type Project struct {
	Title      string
	Targets    []Target
	Extensions []string
	Assets     []Asset
}

// Target is a stage or sprite entry in the project manifest.
type Target struct {
	Name       string `json:"name"`
	IsStage    bool   `json:"isStage"`
	BlockCount int    `json:"blockCount"`
}

// Asset is a binary resource referenced by the manifest. The MD5-style
// name doubles as the archive entry name, matching the sb3 convention.
type Asset struct {
	Name string
	Data []byte
}

// coreExtensions are the extension modules that ship with every player.
// Anything outside this set marks the project as using extended
// extensions, which triggers a one-time compatibility advisory on save.
var coreExtensions = map[string]bool{
	"pen":          true,
	"music":        true,
	"videoSensing": true,
	"text2speech":  true,
	"translate":    true,
}

// UsesExtendedExtensions reports whether the project depends on any
// extension module outside the built-in set.
func (p *Project) UsesExtendedExtensions() bool {
	for _, id := range p.Extensions {
		if !coreExtensions[id] {
			return true
		}
	}
	return false
}

// BlockCount returns the total number of blocks across all targets.
func (p *Project) BlockCount() int {
	total := 0
	for _, t := range p.Targets {
		total += t.BlockCount
	}
	return total
}
