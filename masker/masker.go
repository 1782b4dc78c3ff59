package masker

import (
	"errors"
	"reflect"

	"go.uber.org/zap"
)

var ErrConfigNotPointer = errors.New("masker: config must be a pointer to a struct")

// LogConfigs logs each config struct on its own line. String fields tagged
// masked:"true" are replaced by their first and last character. Embedded and
// nested structs are flattened into a nested map.
func LogConfigs(logger *zap.Logger, configs ...interface{}) error {
	for _, config := range configs {
		v := reflect.ValueOf(config)
		if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
			return ErrConfigNotPointer
		}
		v = v.Elem()

		logger.Info("config", zap.Any(v.Type().Name(), maskStructFields(v)))
	}
	return nil
}

func maskStructFields(v reflect.Value) map[string]interface{} {
	t := v.Type()
	result := make(map[string]interface{}, v.NumField())
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)
		if !fieldType.IsExported() {
			continue
		}

		switch field.Kind() {
		case reflect.Struct:
			result[fieldType.Name] = maskStructFields(field)
		case reflect.String:
			if fieldType.Tag.Get("masked") == "true" {
				result[fieldType.Name] = maskSensitiveData(field.String())
			} else {
				result[fieldType.Name] = field.String()
			}
		default:
			result[fieldType.Name] = field.Interface()
		}
	}
	return result
}

// maskSensitiveData keeps the first and last character. Strings of two
// characters or fewer become "****".
func maskSensitiveData(data string) string {
	if len(data) <= 2 {
		return "****"
	}
	return string(data[0]) + "****" + string(data[len(data)-1])
}
