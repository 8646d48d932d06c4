package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"db-compare/core/compare"
	"db-compare/core/provider"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Comparison describes one comparison: its data sources, fields and report files.
type Comparison struct {
	Name                           string   `mapstructure:"name" json:"name" validate:"required"`
	SummaryFilename                string   `mapstructure:"summary_filename" json:"summary_filename"`
	DifferencesFilename            string   `mapstructure:"differences_filename" json:"differences_filename"`
	SourceOnlyFilename             string   `mapstructure:"source_only_filename" json:"source_only_filename"`
	TargetOnlyFilename             string   `mapstructure:"target_only_filename" json:"target_only_filename"`
	DifferencesMatchFieldsFilename string   `mapstructure:"differences_match_fields_filename" json:"differences_match_fields_filename"`
	MatchFields                    []string `mapstructure:"match_fields" json:"match_fields" validate:"required,min=1,dive,required"`
	CompareFields                  []string `mapstructure:"compare_fields" json:"compare_fields" validate:"dive,required"`

	Source provider.Settings `mapstructure:"source" json:"source"`
	Target provider.Settings `mapstructure:"target" json:"target"`
}

// Spec returns the engine view of the comparison.
func (c Comparison) Spec() compare.Spec {
	return compare.Spec{
		Name:          c.Name,
		MatchFields:   append([]string(nil), c.MatchFields...),
		CompareFields: append([]string(nil), c.CompareFields...),
	}
}

// Validate checks the descriptor beyond its struct tags: provider kinds, table or query
// presence and field names.
func (c Comparison) Validate() error {
	if err := structValidator().Struct(c); err != nil {
		return fmt.Errorf("%w: comparison %q: %s", compare.ErrConfiguration, c.Name, describe(err))
	}
	if err := c.Source.Validate(); err != nil {
		return fmt.Errorf("%w: comparison %q source: %w", compare.ErrConfiguration, c.Name, err)
	}
	if err := c.Target.Validate(); err != nil {
		return fmt.Errorf("%w: comparison %q target: %w", compare.ErrConfiguration, c.Name, err)
	}
	return c.Spec().Validate()
}

// ComparisonsFile is the top-level layout of a comparisons file.
type ComparisonsFile struct {
	Comparisons []Comparison `mapstructure:"comparisons" json:"comparisons" validate:"required,min=1"`
}

// Find returns the comparison with the given name.
func (f *ComparisonsFile) Find(name string) (Comparison, bool) {
	for _, c := range f.Comparisons {
		if c.Name == name {
			return c, true
		}
	}
	return Comparison{}, false
}

// LoadComparisons reads and validates a comparisons file. JSON, YAML and TOML are
// accepted, chosen by extension.
func LoadComparisons(path string) (*ComparisonsFile, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", compare.ErrConfiguration, path, err)
	}

	var file ComparisonsFile
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s: %w", compare.ErrConfiguration, path, err)
	}
	if len(file.Comparisons) == 0 {
		return nil, fmt.Errorf("%w: %s defines no comparisons", compare.ErrConfiguration, path)
	}

	seen := make(map[string]struct{}, len(file.Comparisons))
	for _, c := range file.Comparisons {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[c.Name]; dup {
			return nil, fmt.Errorf("%w: comparison %q is defined twice", compare.ErrConfiguration, c.Name)
		}
		seen[c.Name] = struct{}{}
	}

	return &file, nil
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// structValidator returns the shared validator. Messages use mapstructure names.
func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("mapstructure")
			if tag == "" || tag == "-" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})
	})
	return validate
}

// describe flattens validation errors into one line.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, len(verrs))
	for i, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Comparison.")
		if fe.Param() != "" {
			parts[i] = fmt.Sprintf("%s fails %s=%s", field, fe.Tag(), fe.Param())
		} else {
			parts[i] = fmt.Sprintf("%s fails %s", field, fe.Tag())
		}
	}
	return strings.Join(parts, "; ")
}
