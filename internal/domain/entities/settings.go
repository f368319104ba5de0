package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	logger "github.com/sirupsen/logrus"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

const (
	VCSGit = "git"
	VCSSvn = "svn"

	defaultKnifeBin      = "knife"
	defaultKnifeConfig   = "/root/.chef/knife.rb"
	defaultLockfile      = "/var/lock/grocer.lock"
	defaultWatchInterval = "5m"
	checkpointFileName   = "grocer_revision"
)

// Settings is the top-level configuration for grocer.
type Settings struct {
	Repository RepositoryConfig `yaml:"repository" hcl:"repository,block"`
	Locations  Locations        `yaml:"locations"  hcl:"locations,block"`
	Checkpoint string           `yaml:"checkpoint" hcl:"checkpoint,optional"` // file path or s3://bucket/key
	Lockfile   string           `yaml:"lockfile"   hcl:"lockfile,optional"`
	Knife      *KnifeConfig     `yaml:"knife"      hcl:"knife,block"`
	Taste      *TasteConfig     `yaml:"taste"      hcl:"taste,block"`
	Watch      *WatchConfig     `yaml:"watch"      hcl:"watch,block"`
}

// RepositoryConfig describes the local checkout to deliver from.
type RepositoryConfig struct {
	Type string `yaml:"type" hcl:"type"`         // "git" or "svn"
	Path string `yaml:"path" hcl:"path"`         // absolute path of the checkout
	URL  string `yaml:"url"  hcl:"url,optional"` // cloned when the checkout is missing
	Bin  string `yaml:"bin"  hcl:"bin,optional"` // VCS binary override
}

// KnifeConfig points at the knife binary and its configuration.
type KnifeConfig struct {
	Bin    string `yaml:"bin"    hcl:"bin,optional"`
	Config string `yaml:"config" hcl:"config,optional"`
}

// TasteConfig configures the interactive "test my changes" flow.
type TasteConfig struct {
	KnifeConfig string `yaml:"knife_config" hcl:"knife_config,optional"` // knife config of the test server
	RefFile     string `yaml:"ref_file"     hcl:"ref_file,optional"`     // last uploaded revision
}

// WatchConfig configures the long-running delivery loop.
type WatchConfig struct {
	Interval string `yaml:"interval" hcl:"interval,optional"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewSettings reads a YAML (.yaml/.yml) or HCL (.hcl) configuration file,
// expands environment variables, applies defaults and validates the result.
func NewSettings(path string, log logger.FieldLogger) (*Settings, error) {
	var settings Settings

	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		if err := hclsimple.DecodeFile(path, hclEvalContext(), &settings); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
		if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
		}
	}

	settings.expandEnv(log)
	settings.applyDefaults()

	if err := validate(&settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	locations := []string{".", ".config", "/etc/grocer"}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config"))
	}

	patterns := []string{
		"grocer.yaml",
		"grocer.yml",
		"grocer.hcl",
		".grocer.yaml",
		".grocer.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// WatchInterval returns the parsed polling interval of the watch loop.
func (s *Settings) WatchInterval() time.Duration {
	d, err := time.ParseDuration(s.Watch.Interval)
	if err != nil {
		return 0
	}
	return d
}

// RepoFile returns the absolute path of a repository-relative path.
func (s *Settings) RepoFile(rel string) string {
	return filepath.Join(s.Repository.Path, rel)
}

// hclEvalContext exposes the process environment to HCL files as env.NAME.
func hclEvalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}
	env := cty.EmptyObjectVal
	if len(vars) > 0 {
		env = cty.ObjectVal(vars)
	}
	return &hcl.EvalContext{Variables: map[string]cty.Value{"env": env}}
}

// expandEnv replaces ${VAR} references in every path-like field.
func (s *Settings) expandEnv(log logger.FieldLogger) {
	expand := func(raw string) string {
		return expandEnvString(raw, log)
	}
	s.Repository.Path = expand(s.Repository.Path)
	s.Repository.URL = expand(s.Repository.URL)
	s.Repository.Bin = expand(s.Repository.Bin)
	s.Checkpoint = expand(s.Checkpoint)
	s.Lockfile = expand(s.Lockfile)
	if s.Knife != nil {
		s.Knife.Bin = expand(s.Knife.Bin)
		s.Knife.Config = expand(s.Knife.Config)
	}
	if s.Taste != nil {
		s.Taste.KnifeConfig = expand(s.Taste.KnifeConfig)
		s.Taste.RefFile = expand(s.Taste.RefFile)
	}
}

func expandEnvString(raw string, log logger.FieldLogger) string {
	if raw == "" {
		return raw
	}
	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		log.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}

// applyDefaults fills in zero-value fields.
func (s *Settings) applyDefaults() {
	if s.Repository.Type == "" {
		s.Repository.Type = VCSGit
	}
	if len(s.Locations.CookbookDirs) == 0 {
		s.Locations.CookbookDirs = []string{"chef/cookbooks"}
	}
	if s.Locations.RoleDir == "" {
		s.Locations.RoleDir = "chef/roles"
	}
	if s.Locations.DatabagDir == "" {
		s.Locations.DatabagDir = "chef/databags"
	}
	if s.Checkpoint == "" && s.Repository.Path != "" {
		s.Checkpoint = filepath.Join(filepath.Dir(s.Repository.Path), checkpointFileName)
	}
	if s.Lockfile == "" {
		s.Lockfile = defaultLockfile
	}
	if s.Knife == nil {
		s.Knife = &KnifeConfig{}
	}
	if s.Knife.Bin == "" {
		s.Knife.Bin = defaultKnifeBin
	}
	if s.Knife.Config == "" {
		s.Knife.Config = defaultKnifeConfig
	}
	if s.Taste == nil {
		s.Taste = &TasteConfig{}
	}
	if s.Taste.KnifeConfig == "" {
		s.Taste.KnifeConfig = s.Knife.Config
	}
	if s.Taste.RefFile == "" {
		s.Taste.RefFile = filepath.Join(os.TempDir(), "grocer-taste.ref")
	}
	if s.Watch == nil {
		s.Watch = &WatchConfig{}
	}
	if s.Watch.Interval == "" {
		s.Watch.Interval = defaultWatchInterval
	}
}

// validate checks for required configuration values.
func validate(s *Settings) error {
	switch s.Repository.Type {
	case VCSGit, VCSSvn:
	default:
		return fmt.Errorf("repository.type must be %q or %q, got %q", VCSGit, VCSSvn, s.Repository.Type)
	}
	if s.Repository.Path == "" {
		return errors.New("repository.path is required")
	}
	if !filepath.IsAbs(s.Repository.Path) {
		return fmt.Errorf("repository.path must be an absolute path: %s", s.Repository.Path)
	}

	for i, dir := range s.Locations.CookbookDirs {
		if normalizeRoot(dir) == "" {
			return fmt.Errorf("locations.cookbook_dirs[%d] must not be empty", i)
		}
	}
	if normalizeRoot(s.Locations.RoleDir) == "" {
		return errors.New("locations.role_dir must not be empty")
	}
	if normalizeRoot(s.Locations.DatabagDir) == "" {
		return errors.New("locations.databag_dir must not be empty")
	}
	if err := s.Locations.ValidateExcludes(); err != nil {
		return fmt.Errorf("locations.exclude: %w", err)
	}

	if d, err := time.ParseDuration(s.Watch.Interval); err != nil || d <= 0 {
		return fmt.Errorf("watch.interval must be a positive duration, got %q", s.Watch.Interval)
	}

	return nil
}
