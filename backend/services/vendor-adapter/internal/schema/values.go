package schema

import (
	"net/url"
	"reflect"
	"strings"
)

// Values flattens the non-empty string fields of a params struct into
// url.Values keyed by their json names.
func Values(params interface{}) url.Values {
	out := url.Values{}
	v := reflect.Indirect(reflect.ValueOf(params))
	if v.Kind() != reflect.Struct {
		return out
	}
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		if f.Kind() != reflect.String || f.String() == "" {
			continue
		}
		name := strings.SplitN(t.Field(i).Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}
		out.Set(name, f.String())
	}
	return out
}
