package config

// Model is the unified, format-agnostic representation of a launcher
// configuration: additional libraries, application variants, and plugins.
type Model struct {
	Libraries map[string]*Library
	Apps      map[string]*App
	Plugins   *Plugins
}

// NewModel returns an empty model with its maps allocated.
func NewModel() *Model {
	return &Model{
		Libraries: make(map[string]*Library),
		Apps:      make(map[string]*App),
	}
}

// Library is the format-agnostic representation of a `library` block.
type Library struct {
	Name      string
	Kind      string
	DependsOn []string
}

// App is the format-agnostic representation of an `app` block.
type App struct {
	Name          string
	Libraries     []string
	NativeMethods []string
	Entry         Entry
}

// Entry names the shared object and symbol that start an app.
type Entry struct {
	SharedObject string
	Symbol       string
}

// Plugins is the format-agnostic representation of the `plugins` block.
type Plugins struct {
	// Path is the plugin directory, already rooted at the declaring file.
	Path  string
	Names []string
}
