// Package hclconf loads the optional HCL configuration file for the server.
// Values may reference the process environment through the `env` object,
// e.g. `listen_addr = ":${env.PORT}"`.
package hclconf

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// File is the decoded configuration file. Every block and attribute is
// optional; zero values mean "use the built-in default".
type File struct {
	Server  *Server  `hcl:"server,block"`
	Logging *Logging `hcl:"logging,block"`
	Tools   *Tools   `hcl:"tools,block"`
}

// Server configures the web server.
type Server struct {
	ListenAddr     string `hcl:"listen_addr,optional"`
	MaxUploadBytes int64  `hcl:"max_upload_bytes,optional"`
}

// Logging configures the slog handler.
type Logging struct {
	Level  string `hcl:"level,optional"`
	Format string `hcl:"format,optional"`
}

// Tools configures per-tool defaults.
type Tools struct {
	FakeMines *FakeMines `hcl:"fake_mines,block"`
}

// FakeMines holds the fake-mines opt-in defaults applied to web uploads that
// don't set the corresponding checkboxes.
type FakeMines struct {
	AllowSimultaneous bool `hcl:"allow_simultaneous,optional"`
	AllowSplitTiming  bool `hcl:"allow_split_timing,optional"`
}

// Load reads and decodes a configuration file.
func Load(path string) (*File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return parse(path, src)
}

func parse(filename string, src []byte) (*File, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %s", filename, diags.Error())
	}

	var f File
	diags = gohcl.DecodeBody(hclFile.Body, evalContext(), &f)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid config %s: %s", filename, diags.Error())
	}
	return &f, nil
}

// evalContext exposes the process environment as the `env` object.
func evalContext() *hcl.EvalContext {
	envVars := make(map[string]cty.Value)
	for _, entry := range os.Environ() {
		if name, value, ok := strings.Cut(entry, "="); ok {
			envVars[name] = cty.StringVal(value)
		}
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(envVars),
		},
	}
}
