package httpclient

import (
	"fmt"
	"net/url"
	"reflect"

	"github.com/spf13/cast"
)

// Params maps query parameter names to scalar values. Nil values, including
// typed nil pointers, are skipped.
type Params map[string]any

// ResolveURL builds the final request URL from rawURL, the optional base URL
// and the query parameters in cfg. Parameters are set on the query, replacing
// any value already present for the same name.
func ResolveURL(rawURL string, cfg RequestConfig) (string, error) {
	target, err := resolveTarget(rawURL, cfg.BaseURL)
	if err != nil {
		return "", err
	}

	if len(cfg.Params) == 0 {
		return target.String(), nil
	}

	query := target.Query()
	for key, value := range cfg.Params {
		str, skip, err := paramString(value)
		if err != nil {
			return "", fmt.Errorf("%w %q: %v", ErrInvalidParam, key, err)
		}
		if skip {
			continue
		}
		query.Set(key, str)
	}
	target.RawQuery = query.Encode()

	return target.String(), nil
}

func resolveTarget(rawURL, baseURL string) (*url.URL, error) {
	ref, err := url.Parse(rawURL)
	if err != nil {
		return nil, &TransportError{URL: rawURL, Err: err}
	}

	if baseURL == "" {
		if !isAbsolute(ref) {
			return nil, fmt.Errorf("%w: %q", ErrRelativeURL, rawURL)
		}
		return ref, nil
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, &TransportError{URL: baseURL, Err: err}
	}
	if !isAbsolute(base) {
		return nil, fmt.Errorf("%w: base %q", ErrRelativeURL, baseURL)
	}

	return base.ResolveReference(ref), nil
}

func isAbsolute(u *url.URL) bool {
	return u.IsAbs() && u.Host != ""
}

func paramString(value any) (string, bool, error) {
	if value == nil {
		return "", true, nil
	}

	v := reflect.ValueOf(value)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return "", true, nil
		}
		v = v.Elem()
	}

	var scalar any
	switch v.Kind() {
	case reflect.String:
		scalar = v.String()
	case reflect.Bool:
		scalar = v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		scalar = v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		scalar = v.Uint()
	case reflect.Float32:
		scalar = float32(v.Float())
	case reflect.Float64:
		scalar = v.Float()
	default:
		return "", false, fmt.Errorf("unsupported kind %s", v.Kind())
	}

	str, err := cast.ToStringE(scalar)
	if err != nil {
		return "", false, err
	}
	return str, false, nil
}
