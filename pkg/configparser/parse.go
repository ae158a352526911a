package configparser

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"time"
)

// LoadAndParseYaml loads environment variables from the YAML file and then
// fills cfg from them using `env` and `default` struct tags. cfg must be a
// pointer to a struct; nested structs are walked recursively.
func LoadAndParseYaml(filepath string, cfg any) error {
	if err := LoadYamlFile(filepath); err != nil {
		return err
	}
	return ParseEnv(cfg)
}

// ParseEnv fills the struct pointed to by cfg from the environment.
func ParseEnv(cfg any) error {
	v := reflect.ValueOf(cfg)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("config must be a pointer to a struct, got %T", cfg)
	}
	return parseStruct(v.Elem())
}

func parseStruct(v reflect.Value) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		value := v.Field(i)

		if !value.CanSet() {
			continue
		}

		// Recurse into nested config sections
		if value.Kind() == reflect.Struct && field.Tag.Get("env") == "" && value.Type() != reflect.TypeOf(time.Duration(0)) {
			if err := parseStruct(value); err != nil {
				return err
			}
			continue
		}

		envName := field.Tag.Get("env")
		if envName == "" {
			continue
		}

		raw := os.Getenv(envName)
		if raw == "" {
			raw = field.Tag.Get("default")
		}
		if raw == "" {
			continue
		}

		if err := setField(value, raw); err != nil {
			return fmt.Errorf("field %s (%s): %w", field.Name, envName, err)
		}
	}
	return nil
}

func setField(value reflect.Value, raw string) error {
	// time.Duration before the generic int case
	if value.Type() == reflect.TypeOf(time.Duration(0)) {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", raw, err)
		}
		value.SetInt(int64(d))
		return nil
	}

	switch value.Kind() {
	case reflect.String:
		value.SetString(raw)
	case reflect.Int, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer %q: %w", raw, err)
		}
		value.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid bool %q: %w", raw, err)
		}
		value.SetBool(b)
	case reflect.Float64:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid float %q: %w", raw, err)
		}
		value.SetFloat(f)
	default:
		return fmt.Errorf("unsupported config field kind %s", value.Kind())
	}
	return nil
}
