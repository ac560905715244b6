package config

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// LoadWithEnv decodes <name>.yaml into T, then applies environment overrides. The file is
// looked up in the working directory first and then in each of dirs relative to it.
func LoadWithEnv[T any](name string, dirs ...string) (*T, error) {
	path, err := locateFile(name+".yaml", dirs)
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", name)
	}

	fileKeys := k.Raw()
	envProvider := env.Provider(".", env.Opt{
		TransformFunc: func(key, value string) (string, any) {
			return canonicalizeEnvKey(key, fileKeys), value
		},
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	cfg := new(T)
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
			MatchName:        strings.EqualFold,
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", name)
	}

	return cfg, nil
}

func locateFile(filename string, dirs []string) (string, error) {
	candidates := []string{filename}
	if len(dirs) > 0 {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, "os.Getwd")
		}
		for _, dir := range dirs {
			candidates = append(candidates, filepath.Join(wd, dir, filename))
		}
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", errors.Errorf("config file %s not found in any search path", filename)
}

// canonicalizeEnvKey maps SECURITY_PASSWORDKEY to security.passwordKey by matching each
// underscore separated segment against the keys already loaded from YAML. Segments with no
// match are kept lower-cased.
func canonicalizeEnvKey(rawKey string, known map[string]any) string {
	var path []string

	for _, segment := range strings.Split(strings.ToLower(rawKey), "_") {
		if segment == "" {
			continue
		}

		key, children := matchKey(known, segment)
		path = append(path, key)
		known = children
	}

	return strings.Join(path, ".")
}

// matchKey returns the YAML spelling of segment and its nested keys, or segment itself and
// nil when the current level has no such key.
func matchKey(level map[string]any, segment string) (string, map[string]any) {
	for key, value := range level {
		if foldKey(key) == foldKey(segment) {
			children, _ := value.(map[string]any)

			return key, children
		}
	}

	return segment, nil
}

func foldKey(s string) string {
	return strings.Map(func(r rune) rune {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return -1
		}

		return unicode.ToLower(r)
	}, s)
}
